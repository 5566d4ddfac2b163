package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/services"
)

type JobHandler struct {
	log  *logger.Logger
	jobs services.JobService
}

func NewJobHandler(log *logger.Logger, jobs services.JobService) *JobHandler {
	return &JobHandler{
		log:  log.With("handler", "JobHandler"),
		jobs: jobs,
	}
}

// ListJobs serves the public job browser. Filters arrive as query
// params; categories and locations accept comma-separated lists.
func (h *JobHandler) ListJobs(c *gin.Context) {
	filter := services.JobFilter{
		Search:     c.Query("search"),
		Company:    c.Query("company"),
		Categories: splitCSV(c.Query("categories")),
		Locations:  splitCSV(c.Query("locations")),
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
			return
		}
		page = parsed
	}

	result, err := h.jobs.ListJobs(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
