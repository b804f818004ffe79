package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/interfaces/http/response"
)

type UserService interface {
	Get(ctx context.Context, id string) (*entities.User, error)
	Create(ctx context.Context, id string, u *entities.User) (*entities.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Remove(ctx context.Context, id string) error
	RecordLogin(ctx context.Context, id string) error
}

// UserHandler manages the caller's own profile
type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// CreateProfile stores the caller's profile under their identity
// POST /api/v1/users
func (h *UserHandler) CreateProfile(c *gin.Context) {
	userID, err := requireUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.User
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid JSON body"))
		return
	}

	u, err := h.service.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": u})
}

// GetProfile returns the caller's profile
// GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := requireUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	u, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// UpdateProfile merges fields into the caller's profile
// PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
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
	ctx := c.Request.Context()
	if err := h.service.Update(ctx, userID, fields); err != nil {
		response.Error(c, err)
		return
	}

	u, err := h.service.Get(ctx, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// DeleteProfile removes the caller's profile
// DELETE /api/v1/users/me
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	userID, err := requireUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}

// RecordLogin stamps the caller's last login time
// POST /api/v1/users/me/login
func (h *UserHandler) RecordLogin(c *gin.Context) {
	userID, err := requireUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.RecordLogin(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
