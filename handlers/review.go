package handlers

import (
	"net/http"

	"workhive/middleware"
	reviewService "workhive/services/review"
	"workhive/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves deal reviews.
type ReviewHandler struct {
	Service reviewService.ReviewService
}

func NewReviewHandler(svc reviewService.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// SubmitReviewHandler records a rating about the other deal participant.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)

	var input struct {
		DealID  string `json:"dealId" binding:"required"`
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	review, err := h.Service.Submit(actorID, input.DealID, input.Rating, input.Comment)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ListUserReviewsHandler lists reviews about a user.
func (h *ReviewHandler) ListUserReviewsHandler(c *gin.Context) {
	reviews, err := h.Service.ListForUser(c.Param("userId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
