package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every endpoint handler for route registration.
type HandlerBundle struct {
	// Auth endpoints.
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc

	// Job endpoints.
	CreateJobHandler gin.HandlerFunc
	GetJobHandler    gin.HandlerFunc
	CloseJobHandler  gin.HandlerFunc
	ListMyJobs       gin.HandlerFunc

	// Deal lifecycle endpoints.
	ApplyHandler             gin.HandlerFunc
	DecideHandler            gin.HandlerFunc
	RequestCompletionHandler gin.HandlerFunc
	ApproveCompletionHandler gin.HandlerFunc
	MarkPaidHandler          gin.HandlerFunc
	ListMyDeals              gin.HandlerFunc

	// Attendance endpoints.
	CheckInHandler           gin.HandlerFunc
	DecideAttendanceHandler  gin.HandlerFunc
	ListDealAttendance       gin.HandlerFunc

	// Review endpoints.
	SubmitReviewHandler    gin.HandlerFunc
	ListUserReviewsHandler gin.HandlerFunc

	// Search endpoint.
	SearchHandler gin.HandlerFunc
}
