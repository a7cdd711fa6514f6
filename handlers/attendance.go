package handlers

import (
	"net/http"

	"workhive/middleware"
	"workhive/models"
	attendanceService "workhive/services/attendance"
	"workhive/utils"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler serves worker check-ins and contractor approvals.
type AttendanceHandler struct {
	Service attendanceService.AttendanceService
}

func NewAttendanceHandler(svc attendanceService.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{Service: svc}
}

// CheckInHandler records the calling worker's on-site presence.
func (h *AttendanceHandler) CheckInHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)

	var input struct {
		DealID    string  `json:"dealId" binding:"required"`
		Longitude float64 `json:"longitude"`
		Latitude  float64 `json:"latitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	record, err := h.Service.CheckIn(actorID, input.DealID, models.NewGeoPoint(input.Longitude, input.Latitude))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// DecideAttendanceHandler lets the contractor approve or decline a check-in.
func (h *AttendanceHandler) DecideAttendanceHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)

	var input struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.Decide(actorID, c.Param("id"), *input.Approve); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListDealAttendanceHandler lists a deal's check-ins for a participant.
func (h *AttendanceHandler) ListDealAttendanceHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)

	records, err := h.Service.ListForDeal(actorID, c.Param("dealId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}
