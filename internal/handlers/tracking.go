package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/placementflow/placementflow-backend/internal/dtos"
	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/services"
)

type TrackingHandler struct {
	log      *logger.Logger
	tracking services.TrackingService
}

func NewTrackingHandler(log *logger.Logger, tracking services.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		log:      log.With("handler", "TrackingHandler"),
		tracking: tracking,
	}
}

func (h *TrackingHandler) List(c *gin.Context) {
	entries, err := h.tracking.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": entries})
}

func (h *TrackingHandler) Upsert(c *gin.Context) {
	var req dtos.UpsertTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.tracking.Upsert(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": entry})
}

func (h *TrackingHandler) Delete(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	if err := h.tracking.Delete(c.Request.Context(), jobID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
