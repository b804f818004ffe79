package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/interfaces/http/response"
)

type ProgramService interface {
	Get(ctx context.Context, id string) (*entities.Program, error)
	Add(ctx context.Context, p *entities.Program) (string, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Remove(ctx context.Context, id string) error
}

// ProgramHandler handles program endpoints. Listing by university lives on
// the university handler.
type ProgramHandler struct {
	service ProgramService
}

func NewProgramHandler(service ProgramService) *ProgramHandler {
	return &ProgramHandler{service: service}
}

// GetProgram gets a program by ID
// GET /api/v1/programs/:id
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"program": p})
}

// CreateProgram creates a program
// POST /api/v1/programs
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var input entities.Program
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid JSON body"))
		return
	}

	id, err := h.service.Add(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id})
}

// UpdateProgram merges fields into a program
// PUT /api/v1/programs/:id
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	fields, err := bindPatch(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.service.Update(ctx, id, fields); err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.service.Get(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"program": p})
}

// DeleteProgram deletes a program
// DELETE /api/v1/programs/:id
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Program deleted successfully"})
}
