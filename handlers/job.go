package handlers

import (
	"net/http"

	jobRepo "workhive/database/repository/job"
	"workhive/middleware"
	"workhive/models"
	"workhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JobHandler serves contractor job-posting endpoints.
type JobHandler struct {
	Jobs jobRepo.JobRepository
}

func NewJobHandler(jobs jobRepo.JobRepository) *JobHandler {
	return &JobHandler{Jobs: jobs}
}

// CreateJobHandler posts a new open job for the calling contractor.
func (h *JobHandler) CreateJobHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)

	var input struct {
		WorkType      string  `json:"workType" binding:"required"`
		Description   string  `json:"description"`
		WorkersNeeded int     `json:"workersNeeded"`
		PaymentAmount float64 `json:"paymentAmount" binding:"required"`
		PaymentType   string  `json:"paymentType" binding:"required"`
		Address       string  `json:"address"`
		Longitude     float64 `json:"longitude"`
		Latitude      float64 `json:"latitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.WorkersNeeded <= 0 {
		input.WorkersNeeded = 1
	}
	switch input.PaymentType {
	case models.PaymentDaily, models.PaymentFixed, models.PaymentHourly:
	default:
		utils.JSONError(c, http.StatusBadRequest, "paymentType must be daily, fixed or hourly", "")
		return
	}

	job := &models.Job{
		ID:            uuid.New().String(),
		ContractorID:  actorID,
		WorkType:      input.WorkType,
		Description:   input.Description,
		WorkersNeeded: input.WorkersNeeded,
		PaymentAmount: input.PaymentAmount,
		PaymentType:   input.PaymentType,
		Address:       input.Address,
		LocationGeo:   models.NewGeoPoint(input.Longitude, input.Latitude),
		Status:        models.JobOpen,
	}
	if err := h.Jobs.Create(job); err != nil {
		utils.RespondError(c, utils.NewUpstreamError("failed to create job", err))
		return
	}
	c.JSON(http.StatusCreated, job)
}

// GetJobHandler fetches one job.
func (h *JobHandler) GetJobHandler(c *gin.Context) {
	job, err := h.Jobs.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, utils.NewUpstreamError("failed to load job", err))
		return
	}
	if job == nil {
		utils.RespondError(c, utils.NewNotFoundError("job not found"))
		return
	}
	c.JSON(http.StatusOK, job)
}

// CloseJobHandler closes the contractor's own job to new applications.
// Live deals on it continue to completion.
func (h *JobHandler) CloseJobHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)

	job, err := h.Jobs.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, utils.NewUpstreamError("failed to load job", err))
		return
	}
	if job == nil {
		utils.RespondError(c, utils.NewNotFoundError("job not found"))
		return
	}
	if job.ContractorID != actorID {
		utils.RespondError(c, utils.NewAuthorizationError("only the posting contractor may close a job"))
		return
	}

	closed, err := h.Jobs.Close(job.ID)
	if err != nil {
		utils.RespondError(c, utils.NewUpstreamError("failed to close job", err))
		return
	}
	if !closed {
		utils.RespondError(c, utils.NewStateConflictError("job is already closed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": job.ID, "status": models.JobClosed})
}

// ListMyJobsHandler lists the calling contractor's postings.
func (h *JobHandler) ListMyJobsHandler(c *gin.Context) {
	actorID, _ := middleware.Identity(c)
	jobs, err := h.Jobs.ListByContractor(actorID)
	if err != nil {
		utils.RespondError(c, utils.NewUpstreamError("failed to list jobs", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
