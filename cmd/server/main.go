package main

import (
	"fmt"
	"net/http"
	"time"

	"thsl-backend-go/internal/client"
	"thsl-backend-go/internal/concat"
	"thsl-backend-go/internal/config"
	"thsl-backend-go/internal/database"
	"thsl-backend-go/internal/handler"
	"thsl-backend-go/internal/layout"
	"thsl-backend-go/internal/repository"
	"thsl-backend-go/internal/service"
	"thsl-backend-go/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize the logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting ThSL Backend API Server")

	// Initialize the database
	logger.Info("Connecting to database...")
	if err := database.Connect(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	logger.Info("Running database migrations...")
	if err := database.Migrate(); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.HealthCheck(); err != nil {
		logger.Fatalf("Database is not available: %v", err)
	}

	logger.Info("Database connected and ready")

	// Set up the pose and output directories
	poseFiles, err := storage.NewResolver(cfg.Pose.Dir)
	if err != nil {
		logger.Fatalf("Failed to set up pose directory: %v", err)
	}
	output, err := storage.NewResolver(cfg.Pose.OutputDir)
	if err != nil {
		logger.Fatalf("Failed to set up output directory: %v", err)
	}

	// Initialize the model service clients
	timeout := time.Duration(cfg.ModelAPI.Timeout) * time.Second
	classifier := client.NewClassifierClient(cfg.ModelAPI.BaseURL, timeout, logger)
	renderer := client.NewRendererClient(cfg.ModelAPI.BaseURL, timeout, logger)

	// Initialize the core components
	scanner := layout.NewScanner(cfg.Pose.ReferenceOffset)
	concatenator := concat.NewConcatenator(classifier, cfg.Pose.FramePadding, logger)

	// Initialize repositories and services
	wordRepo := repository.NewWordRepository(database.DB)
	wordService := service.NewWordService(wordRepo, poseFiles, logger)
	sentenceService := service.NewSentenceService(
		wordService, poseFiles, output, scanner, concatenator, renderer,
		cfg.Pose.Landmarks, cfg.Pose.FPS, logger,
	)

	// Initialize handlers
	poseHandler := handler.NewPoseHandler(wordService, poseFiles, scanner, cfg.Pose.MetaLandmarks, logger)
	sentenceHandler := handler.NewSentenceHandler(sentenceService, classifier, poseFiles.Root(), logger)

	// Set up the Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Serve produced videos
	router.Static("/static", output.Root())

	poseHandler.RegisterRoutes(router)
	sentenceHandler.RegisterRoutes(router)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":  "ThSL API is running!",
			"version":  "1.0.0",
			"pose_dir": poseFiles.Root(),
		})
	})

	// Start the server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Server listening on %s", serverAddr)
	logger.Infof("API available at: http://localhost:%d/api", cfg.Server.Port)

	if err := router.Run(serverAddr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
