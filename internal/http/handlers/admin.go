package handlers

import (
	"context"
	"net/http"

	"github.com/Thaihung204/CreditNoVa/internal/domain/survey"
	"github.com/gin-gonic/gin"
)

type StatsService interface {
	Stats(ctx context.Context) (*survey.Stats, error)
}

// AdminHandler backs the dashboard aggregates (totals, average score,
// score-band distribution).
type AdminHandler struct {
	statsService StatsService
}

func NewAdminHandler(statsService StatsService) *AdminHandler {
	return &AdminHandler{statsService: statsService}
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats_failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
