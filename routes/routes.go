package routes

import (
	"net/http"
	"time"

	"workhive/handlers"
	"workhive/middleware"
	"workhive/models"
	"workhive/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
	}
}

// RegisterJobRoutes registers contractor job-posting endpoints.
func RegisterJobRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/jobs")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("/:id", hb.GetJobHandler)

		contractor := api.Group("")
		contractor.Use(middleware.RequireRole(models.RoleContractor))
		contractor.POST("", hb.CreateJobHandler)
		contractor.PUT("/:id/close", hb.CloseJobHandler)
		contractor.GET("", hb.ListMyJobs)
	}
}

// RegisterDealRoutes registers the lifecycle endpoints. Each maps to
// one state-machine event; the service enforces origin and ownership.
func RegisterDealRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/deals")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("", hb.ListMyDeals)

		worker := api.Group("")
		worker.Use(middleware.RequireRole(models.RoleWorker))
		worker.POST("/apply", hb.ApplyHandler)
		worker.PUT("/:id/request-completion", hb.RequestCompletionHandler)
		worker.PUT("/:id/mark-paid", hb.MarkPaidHandler)

		contractor := api.Group("")
		contractor.Use(middleware.RequireRole(models.RoleContractor))
		contractor.PUT("/:id/decide", hb.DecideHandler)
		contractor.PUT("/:id/approve-completion", hb.ApproveCompletionHandler)
	}
}

// RegisterAttendanceRoutes registers check-in endpoints.
func RegisterAttendanceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/attendance")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("/deal/:dealId", hb.ListDealAttendance)

		worker := api.Group("")
		worker.Use(middleware.RequireRole(models.RoleWorker))
		worker.POST("/check-in", hb.CheckInHandler)

		contractor := api.Group("")
		contractor.Use(middleware.RequireRole(models.RoleContractor))
		contractor.PUT("/:id/decide", hb.DecideAttendanceHandler)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.SubmitReviewHandler)
		api.GET("/user/:userId", hb.ListUserReviewsHandler)
	}
}

// RegisterSearchRoutes registers the single role-branched search endpoint.
func RegisterSearchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/search")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.SearchHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterJobRoutes(r, hb)
	RegisterDealRoutes(r, hb)
	RegisterAttendanceRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterSearchRoutes(r, hb)
	RegisterHealthRoute(r)
}
