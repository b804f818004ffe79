package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/interfaces/http/response"
)

type ScrapeRequestService interface {
	Submit(ctx context.Context, userID string, input *entities.ScrapeRequestInput) (*entities.ScrapeRequest, error)
	List(ctx context.Context, status entities.ScrapeStatus) ([]*entities.ScrapeRequest, error)
	UpdateStatus(ctx context.Context, id string, next entities.ScrapeStatus) (*entities.ScrapeRequest, error)
}

type ScrapeRequestHandler struct {
	service ScrapeRequestService
}

func NewScrapeRequestHandler(service ScrapeRequestService) *ScrapeRequestHandler {
	return &ScrapeRequestHandler{service: service}
}

// SubmitScrapeRequest asks for a university site to be scraped
// POST /api/v1/scrape-requests
func (h *ScrapeRequestHandler) SubmitScrapeRequest(c *gin.Context) {
	userID, err := requireUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.ScrapeRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid JSON body"))
		return
	}

	req, err := h.service.Submit(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"scrapeRequest": req})
}

// ListScrapeRequests lists requests, optionally by status
// GET /api/v1/scrape-requests?status=
func (h *ScrapeRequestHandler) ListScrapeRequests(c *gin.Context) {
	status := entities.ScrapeStatus(strings.TrimSpace(c.Query("status")))
	items, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scrapeRequests": items, "count": len(items)})
}

// UpdateScrapeRequestStatus is called back by the scraper
// PUT /api/v1/scrape-requests/:id/status
func (h *ScrapeRequestHandler) UpdateScrapeRequestStatus(c *gin.Context) {
	var input struct {
		Status entities.ScrapeStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("status is required"))
		return
	}

	req, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scrapeRequest": req})
}
