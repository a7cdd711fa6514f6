package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workhive/config"
	"workhive/cron"
	"workhive/database"
	attendanceRepo "workhive/database/repository/attendance"
	dealRepo "workhive/database/repository/deal"
	jobRepo "workhive/database/repository/job"
	reviewRepo "workhive/database/repository/review"
	userRepoPkg "workhive/database/repository/user"
	"workhive/handlers"
	"workhive/routes"
	attendanceSvc "workhive/services/attendance"
	dealSvc "workhive/services/deal"
	"workhive/services/notification"
	"workhive/services/ranking"
	reviewSvc "workhive/services/review"
	searchSvc "workhive/services/search"
	"workhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	jobs := jobRepo.NewMongoJobRepo()
	deals := dealRepo.NewMongoDealRepo()
	attendance := attendanceRepo.NewMongoAttendanceRepo()
	reviews := reviewRepo.NewMongoReviewRepo()

	// Background task queue.
	taskClient := cron.NewTaskClient()
	defer taskClient.Close()

	// Services.
	handlers.SetUserRepo(userRepo)

	rankingService := &ranking.DefaultRankingService{
		Deals:      deals,
		Attendance: attendance,
		Reviews:    reviews,
		Users:      userRepo,
	}

	notificationService, err := notification.NewFCMNotificationService(userRepo)
	if err != nil {
		logger.Fatal("failed to initialize notification service", zap.Error(err))
	}

	dealService := &dealSvc.DefaultDealService{
		Deals: deals,
		Jobs:  jobs,
		Users: userRepo,
		Tasks: taskClient,
	}
	attendanceService := &attendanceSvc.DefaultAttendanceService{
		Records: attendance,
		Deals:   deals,
	}
	reviewService := &reviewSvc.DefaultReviewService{
		Reviews: reviews,
		Deals:   deals,
		Users:   userRepo,
		Tasks:   taskClient,
	}
	searchService := &searchSvc.DefaultSearchService{
		Users: userRepo,
		Jobs:  jobs,
		Deals: deals,
		Cache: utils.GetCacheClient(),
	}

	// Side-effect worker and nightly rank sweep.
	cron.InitTaskWorker(rankingService, notificationService)
	sweeper := cron.StartRankingSweep(userRepo, taskClient)
	defer sweeper.Stop()

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Handlers.
	jobHandler := handlers.NewJobHandler(jobs)
	dealHandler := handlers.NewDealHandler(dealService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	searchHandler := handlers.NewSearchHandler(searchService)

	handlerBundle := &handlers.HandlerBundle{
		RegisterHandler: handlers.RegisterHandler,
		LoginHandler:    handlers.LoginHandler,

		CreateJobHandler: jobHandler.CreateJobHandler,
		GetJobHandler:    jobHandler.GetJobHandler,
		CloseJobHandler:  jobHandler.CloseJobHandler,
		ListMyJobs:       jobHandler.ListMyJobsHandler,

		ApplyHandler:             dealHandler.ApplyHandler,
		DecideHandler:            dealHandler.DecideHandler,
		RequestCompletionHandler: dealHandler.RequestCompletionHandler,
		ApproveCompletionHandler: dealHandler.ApproveCompletionHandler,
		MarkPaidHandler:          dealHandler.MarkPaidHandler,
		ListMyDeals:              dealHandler.ListMyDealsHandler,

		CheckInHandler:          attendanceHandler.CheckInHandler,
		DecideAttendanceHandler: attendanceHandler.DecideAttendanceHandler,
		ListDealAttendance:      attendanceHandler.ListDealAttendanceHandler,

		SubmitReviewHandler:    reviewHandler.SubmitReviewHandler,
		ListUserReviewsHandler: reviewHandler.ListUserReviewsHandler,

		SearchHandler: searchHandler.SearchHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
