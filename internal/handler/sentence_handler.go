package handler

import (
	"errors"
	"net/http"
	"os"

	"thsl-backend-go/internal/client"
	"thsl-backend-go/internal/concat"
	"thsl-backend-go/internal/database"
	"thsl-backend-go/internal/service"
	"thsl-backend-go/internal/storage"
	"thsl-backend-go/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SentenceHandler handles sentence synthesis and service health requests
type SentenceHandler struct {
	sentenceService *service.SentenceService
	classifier      *client.ClassifierClient
	poseDir         string
	logger          *logrus.Logger
}

// NewSentenceHandler creates a new SentenceHandler instance
func NewSentenceHandler(sentenceService *service.SentenceService, classifier *client.ClassifierClient, poseDir string, logger *logrus.Logger) *SentenceHandler {
	return &SentenceHandler{
		sentenceService: sentenceService,
		classifier:      classifier,
		poseDir:         poseDir,
		logger:          logger,
	}
}

// RegisterRoutes registers the sentence API routes
func (h *SentenceHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/sentence", h.Synthesize)
		api.GET("/health", h.HealthCheck)
	}
}

// Synthesize produces a signed-sentence video from an ordered word list
func (h *SentenceHandler) Synthesize(c *gin.Context) {
	h.logger.Info("Received sentence synthesis request")

	var req models.SentenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	resp, err := h.sentenceService.Synthesize(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorf("Sentence synthesis failed: %v", err)
		switch {
		case errors.Is(err, concat.ErrEmptyInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "words list cannot be empty"})
		case errors.Is(err, storage.ErrInvalidOutputTarget):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid output name"})
		case errors.Is(err, service.ErrWordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "sentence synthesis failed"})
		}
		return
	}

	h.logger.Infof("Sentence synthesis completed: %s", resp.VideoName)
	c.JSON(http.StatusOK, resp)
}

// HealthCheck reports the state of the service and its dependencies
func (h *SentenceHandler) HealthCheck(c *gin.Context) {
	h.logger.Debug("Received health check request")

	resp := models.HealthResponse{
		Status:            "ok",
		PoseDirectoryPath: h.poseDir,
	}

	resp.DatabaseConnected = database.HealthCheck() == nil

	if info, err := os.Stat(h.poseDir); err == nil && info.IsDir() {
		resp.PoseDirectoryOK = true
	}

	modelHealth, err := h.classifier.CheckHealth(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Model service unavailable: %v", err)
		resp.ModelServiceStatus = "unavailable"
	} else {
		resp.ModelServiceStatus = modelHealth.Status
	}

	statusCode := http.StatusOK
	if !resp.DatabaseConnected || resp.ModelServiceStatus == "unavailable" {
		resp.Status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, resp)
}
