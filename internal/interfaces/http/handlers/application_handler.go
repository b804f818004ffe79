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

type ApplicationService interface {
	ListByUser(ctx context.Context, userID string, status entities.ApplicationStatus) ([]*entities.Application, error)
	Get(ctx context.Context, userID, id string) (*entities.Application, error)
	Create(ctx context.Context, userID string, input *entities.ApplicationCreateInput) (*entities.Application, error)
	Update(ctx context.Context, userID, id string, fields map[string]interface{}) (*entities.Application, error)
	UpdateStatus(ctx context.Context, userID, id string, input *entities.ApplicationStatusInput) (*entities.Application, error)
	Delete(ctx context.Context, userID, id string) error
}

// ApplicationHandler serves the Application API. Every route acts on
// behalf of the caller identified by X-User-ID.
type ApplicationHandler struct {
	service ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(service ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// ListUserApplications lists the caller's applications
// GET /api/v1/applications/user?status=
func (h *ApplicationHandler) ListUserApplications(c *gin.Context) {
	userID, err := requireUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := entities.ApplicationStatus(strings.TrimSpace(c.Query("status")))
	items, err := h.service.ListByUser(c.Request.Context(), userID, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applications": items, "count": len(items)})
}

// GetApplication gets one of the caller's applications
// GET /api/v1/applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	userID, err := requireUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	app, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"application": app})
}

// CreateApplication starts a new application
// POST /api/v1/applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	userID, err := requireUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.ApplicationCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid JSON body"))
		return
	}

	app, err := h.service.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"application": app})
}

// UpdateApplication merges fields into one of the caller's applications
// PUT /api/v1/applications/:id
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	userID, err := requireUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	fields, err := bindPatch(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	app, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), fields)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"application": app})
}

// UpdateApplicationStatus moves an application to a new status
// PUT /api/v1/applications/:id/status
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	userID, err := requireUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.ApplicationStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid JSON body"))
		return
	}

	app, err := h.service.UpdateStatus(c.Request.Context(), userID, c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"application": app})
}

// DeleteApplication deletes one of the caller's applications
// DELETE /api/v1/applications/:id
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	userID, err := requireUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Application deleted successfully"})
}
