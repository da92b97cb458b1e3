package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hourglass/timesheet/internal/handlers"
	"github.com/hourglass/timesheet/internal/middleware"
	"github.com/hourglass/timesheet/internal/repositories"
	"github.com/hourglass/timesheet/internal/services"
	"github.com/hourglass/timesheet/pkg/config"
	"github.com/hourglass/timesheet/pkg/database"
	"github.com/hourglass/timesheet/pkg/mailer"
)

func main() {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	userRepo := repositories.NewUserRepository(database.DB)
	projectRepo := repositories.NewProjectRepository(database.DB)
	taskTypeRepo := repositories.NewTaskTypeRepository(database.DB)
	weekRepo := repositories.NewWeekRepository(database.DB)
	weeklyLogRepo := repositories.NewWeeklyLogRepository(database.DB)

	userService := services.NewUserService(userRepo, mailer.New())
	projectService := services.NewProjectService(projectRepo)
	taskTypeService := services.NewTaskTypeService(taskTypeRepo)
	weekService := services.NewWeekService(weekRepo)
	weeklyLogService := services.NewWeeklyLogService(weeklyLogRepo, weekService, userRepo, projectRepo, taskTypeRepo)
	exportService := services.NewExportService(weeklyLogRepo)

	// Initialize router
	router := gin.Default()

	// Setup routes
	setupRoutes(router, userService, projectService, taskTypeService, weekService, weeklyLogService, exportService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	userService *services.UserService,
	projectService *services.ProjectService,
	taskTypeService *services.TaskTypeService,
	weekService *services.WeekService,
	weeklyLogService *services.WeeklyLogService,
	exportService *services.ExportService,
) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskTypeHandler := handlers.NewTaskTypeHandler(taskTypeService)
	weekHandler := handlers.NewWeekHandler(weekService)
	weeklyLogHandler := handlers.NewWeeklyLogHandler(weeklyLogService, exportService)
	healthHandler := handlers.NewHealthHandler()

	// Auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/verify-code", authHandler.VerifyCode)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.GET("/users", middleware.AuthRequired(), middleware.ManagerRequired(), authHandler.ListUsers)
	}

	// Week routes
	weeks := router.Group("/api/weeks")
	weeks.Use(middleware.AuthRequired())
	{
		weeks.GET("/current", weekHandler.CurrentWeek)
		weeks.GET("/current-month", weekHandler.CurrentMonthWeeks)
		weeks.GET("", weekHandler.WeeksInRange)
	}

	// Weekly log routes
	logs := router.Group("/api/logs")
	logs.Use(middleware.AuthRequired())
	{
		logs.POST("/upsert", weeklyLogHandler.Upsert)
		logs.POST("/upsert-bulk", weeklyLogHandler.UpsertBulk)
		logs.GET("/user/:userId", weeklyLogHandler.LogsForUser)
		logs.GET("/current/:userId", weeklyLogHandler.CurrentWeekLogs)
		logs.DELETE("/:id", weeklyLogHandler.Delete)
		logs.GET("", middleware.ManagerRequired(), weeklyLogHandler.AllLogs)
		logs.GET("/export", middleware.ManagerRequired(), weeklyLogHandler.Export)
	}

	// Project routes
	projects := router.Group("/api/projects")
	projects.Use(middleware.AuthRequired())
	{
		projects.GET("", projectHandler.ListActive)
		projects.GET("/:id", projectHandler.GetByID)
		projects.GET("/all", middleware.ManagerRequired(), projectHandler.ListAll)
		projects.POST("", middleware.ManagerRequired(), projectHandler.Create)
		projects.POST("/bulk", middleware.ManagerRequired(), projectHandler.CreateBulk)
		projects.PUT("/:id", middleware.ManagerRequired(), projectHandler.Update)
		projects.DELETE("/:id", middleware.ManagerRequired(), projectHandler.Delete)
	}

	// Task type routes
	taskTypes := router.Group("/api/task-types")
	taskTypes.Use(middleware.AuthRequired())
	{
		taskTypes.GET("", taskTypeHandler.List)
		taskTypes.POST("", middleware.ManagerRequired(), taskTypeHandler.Create)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
