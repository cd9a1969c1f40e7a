package handler

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"thsl-backend-go/internal/layout"
	"thsl-backend-go/internal/service"
	"thsl-backend-go/internal/storage"
	"thsl-backend-go/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PoseHandler serves word lookups and raw pose files
type PoseHandler struct {
	wordService   *service.WordService
	poseFiles     *storage.Resolver
	scanner       *layout.Scanner
	metaLandmarks int
	logger        *logrus.Logger
}

// NewPoseHandler creates a new PoseHandler instance
func NewPoseHandler(wordService *service.WordService, poseFiles *storage.Resolver, scanner *layout.Scanner, metaLandmarks int, logger *logrus.Logger) *PoseHandler {
	return &PoseHandler{
		wordService:   wordService,
		poseFiles:     poseFiles,
		scanner:       scanner,
		metaLandmarks: metaLandmarks,
		logger:        logger,
	}
}

// RegisterRoutes registers the pose lookup and vocabulary API routes
func (h *PoseHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/resolve", h.ResolveWord)
		api.GET("/pose", h.GetPoseFile)
		api.GET("/pose_meta", h.GetPoseMeta)
		api.GET("/words", h.ListWords)
		api.POST("/words", h.CreateWord)
		api.DELETE("/words/:id", h.DeleteWord)
	}
}

// ResolveWord looks a word up in the lookup store with a disk fallback
func (h *PoseHandler) ResolveWord(c *gin.Context) {
	word := strings.TrimSpace(c.Query("word"))
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word cannot be empty"})
		return
	}

	h.logger.Infof("Resolving word %q", word)

	resp, err := h.wordService.Resolve(word)
	if err != nil {
		h.logger.Errorf("Resolve failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve word"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPoseFile serves a raw pose file from the pose directory
func (h *PoseHandler) GetPoseFile(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
		return
	}

	full, err := h.poseFiles.Resolve(name)
	if err != nil {
		h.logger.Errorf("Rejected pose file name %q: %v", name, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}

	if _, err := os.Stat(full); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file '" + name + "' not found on disk"})
		return
	}

	c.FileAttachment(full, name)
}

// GetPoseMeta returns the recovered byte layout of a pose file so clients
// can parse the float32 frames directly
func (h *PoseHandler) GetPoseMeta(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
		return
	}

	landmarks := h.metaLandmarks
	if v := c.Query("landmarks"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "landmarks must be a positive number"})
			return
		}
		landmarks = parsed
	}

	info, err := h.poseFiles.Stat(name)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidOutputTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "file '" + name + "' not found on disk"})
		return
	}

	lay, err := h.scanner.FileLayout(name, info.Size(), info.ModTime(), landmarks)
	if err != nil {
		h.logger.Errorf("Layout scan failed for %q: %v", name, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.PoseMetaResponse{
		Name:       name,
		Offset:     lay.Offset,
		Frames:     lay.FrameCount,
		Landmarks:  lay.Landmarks,
		Pad:        lay.Pad,
		Size:       lay.Size,
		FrameBytes: lay.FrameBytes,
		PoseDir:    h.poseFiles.Root(),
	})
}

// ListWords returns vocabulary entries with pagination
func (h *PoseHandler) ListWords(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 || size > 100 {
		size = 10
	}

	resp, err := h.wordService.List(page, size)
	if err != nil {
		h.logger.Errorf("Listing vocabulary failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list words"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateWord stores a new vocabulary entry
func (h *PoseHandler) CreateWord(c *gin.Context) {
	var req models.WordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	entry, err := h.wordService.Create(req)
	if err != nil {
		h.logger.Errorf("Creating vocabulary entry failed: %v", err)
		switch {
		case errors.Is(err, storage.ErrInvalidOutputTarget):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pose_filename"})
		case errors.Is(err, service.ErrInvalidWordEntry):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create word"})
		}
		return
	}

	h.logger.Infof("Vocabulary entry created for %q", entry.Word)
	c.JSON(http.StatusCreated, entry)
}

// DeleteWord removes a vocabulary entry by ID
func (h *PoseHandler) DeleteWord(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a number"})
		return
	}

	if err := h.wordService.Delete(uint(id)); err != nil {
		h.logger.Errorf("Deleting vocabulary entry %d failed: %v", id, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete word"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "word deleted"})
}
