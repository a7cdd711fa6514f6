package handlers

import (
	"net/http"

	"workhive/middleware"
	dealService "workhive/services/deal"
	"workhive/utils"

	"github.com/gin-gonic/gin"
)

// DealHandler serves every lifecycle endpoint; all status writes go
// through the deal service's transition table.
type DealHandler struct {
	Service dealService.DealService
}

func NewDealHandler(svc dealService.DealService) *DealHandler {
	return &DealHandler{Service: svc}
}

// ApplyHandler lets a worker apply to a job.
func (h *DealHandler) ApplyHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)

	var input struct {
		JobID string `json:"jobId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	d, err := h.Service.Apply(actorID, input.JobID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// DecideHandler lets the job's contractor accept or reject an application.
func (h *DealHandler) DecideHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)
	dealID := c.Param("id")

	var input struct {
		Decision    string   `json:"decision" binding:"required"` // "accept" or "reject"
		ReasonCodes []string `json:"reasonCodes"`
		Note        string   `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	switch input.Decision {
	case "accept":
		d, err := h.Service.Accept(actorID, dealID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	case "reject":
		d, err := h.Service.Reject(actorID, dealID, input.ReasonCodes, input.Note)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	default:
		utils.JSONError(c, http.StatusBadRequest, "decision must be accept or reject", "")
	}
}

// RequestCompletionHandler lets the deal's worker report the job done.
func (h *DealHandler) RequestCompletionHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)

	d, err := h.Service.RequestCompletion(actorID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ApproveCompletionHandler lets the deal's contractor approve completion.
func (h *DealHandler) ApproveCompletionHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)

	d, err := h.Service.ApproveCompletion(actorID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// MarkPaidHandler lets the deal's worker confirm payment received.
func (h *DealHandler) MarkPaidHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)

	d, err := h.Service.MarkPaid(actorID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ListMyDealsHandler lists the caller's deals, newest first.
func (h *DealHandler) ListMyDealsHandler(c *gin.Context) {
	actorID, role := middleware.Identity(c)

	deals, err := h.Service.ListForActor(actorID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deals": deals})
}
