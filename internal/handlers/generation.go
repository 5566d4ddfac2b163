package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placementflow/placementflow-backend/internal/dtos"
	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/services"
)

type GenerationHandler struct {
	log      *logger.Logger
	gen      services.GenerationService
	profiles services.ProfileService
}

func NewGenerationHandler(log *logger.Logger, gen services.GenerationService, profiles services.ProfileService) *GenerationHandler {
	return &GenerationHandler{
		log:      log.With("handler", "GenerationHandler"),
		gen:      gen,
		profiles: profiles,
	}
}

func (h *GenerationHandler) GenerateAnswer(c *gin.Context) {
	var req dtos.GenerateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.gen.GenerateAnswer(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GenerationHandler) GenerateCoverLetters(c *gin.Context) {
	var req dtos.GenerateCoverLettersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	letters, err := h.gen.GenerateCoverLetters(c.Request.Context(), req.Jobs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    letters,
	})
}

func (h *GenerationHandler) ListCoverLetters(c *gin.Context) {
	letters, err := h.gen.ListCoverLetters(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cover_letters": letters})
}

func (h *GenerationHandler) GetCredits(c *gin.Context) {
	credits, err := h.profiles.GetCredits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"credits": credits})
}
