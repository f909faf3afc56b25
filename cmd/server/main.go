package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "launchpad-core/docs"
	"launchpad-core/internal/application/form"
	"launchpad-core/internal/application/service"
	"launchpad-core/internal/config"
	"launchpad-core/internal/database"
	"launchpad-core/internal/domain/events"
	"launchpad-core/internal/infrastructure/builder"
	"launchpad-core/internal/infrastructure/encryption"
	"launchpad-core/internal/infrastructure/persistence"
	"launchpad-core/internal/middleware"
	"launchpad-core/internal/presentation/flash"
	"launchpad-core/internal/presentation/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title LaunchPad Core API
// @version 1.0
// @description Deployment platform core with project settings management

// @contact.name LaunchPad Team
// @contact.email support@launchpad.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Infrastructure layer
	encryptionService, err := encryption.NewEncryptionService(cfg.Deploy.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to initialize encryption: %v", err)
	}

	orgRepository := persistence.NewOrgRepository(db)
	projectRepository := persistence.NewProjectRepository(db)
	envVarRepository := persistence.NewEnvVarRepository(db)
	deploymentRepository := persistence.NewDeploymentRepository(db)

	dispatcher := events.NewDispatcher()

	deployTrigger, err := builder.NewDeployTrigger(
		projectRepository,
		envVarRepository,
		deploymentRepository,
		encryptionService,
		cfg.Deploy.Registry,
		"/var/lib/launchpad/workspaces",
	)
	if err != nil {
		log.Fatalf("Failed to initialize deploy trigger: %v", err)
	}
	deployTrigger.Register(dispatcher)

	// Application layer
	projectService := service.NewProjectService(projectRepository, envVarRepository, orgRepository, dispatcher)
	settingsService := service.NewSettingsService(projectRepository, envVarRepository, deploymentRepository, encryptionService, dispatcher)
	deploymentService := service.NewDeploymentService(deploymentRepository, projectRepository)

	// Presentation layer
	flashEncoder := flash.NewEncoder(cfg.Server.FlashSecret)
	settingsValidator := form.NewSettingsValidator()

	healthHandler := handlers.NewHealthHandler()
	projectHandler := handlers.NewProjectHandler(projectService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, settingsService, projectService, projectService, settingsValidator, flashEncoder)
	deploymentHandler := handlers.NewDeploymentHandler(deploymentService, projectService)

	authMiddleware, err := middleware.NewAuthMiddleware(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize auth middleware: %v", err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint (no auth required)
		v1.GET("/health", healthHandler.Health)

		// Organization-scoped routes
		orgs := v1.Group("/orgs/:slug")
		orgs.Use(authMiddleware.RequireAuth(), middleware.RequireOrgMember())
		{
			orgs.GET("/projects", projectHandler.ListProjects)
			orgs.POST("/projects", projectHandler.CreateProject)
			orgs.GET("/projects/:id", projectHandler.GetProject)
			orgs.GET("/projects/:id/settings", settingsHandler.GetSettings)
			orgs.POST("/projects/:id/settings", settingsHandler.SubmitSettings)
			orgs.DELETE("/projects/:id/settings", settingsHandler.SubmitSettings)
			orgs.GET("/projects/:id/deployments", deploymentHandler.ListProjectDeployments)
		}

		// Deployment routes
		deployments := v1.Group("/deployments")
		deployments.Use(authMiddleware.RequireAuth())
		{
			deployments.GET("/:id", deploymentHandler.GetDeployment)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
