package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sofiakaramia/Data-Storm/internal/pkg/logger"
	"github.com/sofiakaramia/Data-Storm/internal/services"
)

type StatusHandler struct {
	collector services.Service
	logger    logger.Logger
}

func NewStatusHandler(collector services.Service) *StatusHandler {
	return &StatusHandler{
		collector: collector,
		logger:    logger.New("info", "development").WithField("component", "status_handler"),
	}
}

func (h *StatusHandler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.collector.HealthCheck(ctx); err != nil {
		h.logger.Errorf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *StatusHandler) GetLatestSummary(c *gin.Context) {
	summary, generatedAt, ok := h.collector.LatestSummary()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "no summary has been computed yet",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_at": generatedAt.Format(time.RFC3339),
		"summary":      summary,
	})
}
