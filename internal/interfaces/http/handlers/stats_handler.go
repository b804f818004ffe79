package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"scrapemyuni.backend/internal/domain/entities"
	"scrapemyuni.backend/internal/interfaces/http/response"
)

type StatsService interface {
	Dashboard(ctx context.Context) (*entities.DashboardStats, error)
}

// StatsHandler serves the operator dashboard counters
type StatsHandler struct {
	service StatsService
}

func NewStatsHandler(service StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetDashboard returns collection counts
// GET /api/v1/admin/stats
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
