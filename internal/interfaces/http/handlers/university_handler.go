package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/interfaces/http/response"
)

type UniversityService interface {
	List(ctx context.Context, filter entities.UniversityFilter) ([]*entities.University, error)
	Get(ctx context.Context, id string) (*entities.University, error)
	Search(ctx context.Context, term string, filter entities.UniversityFilter) ([]*entities.University, error)
	GetPrograms(ctx context.Context, universityID string) ([]*entities.Program, error)
	Add(ctx context.Context, u *entities.University) (string, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Remove(ctx context.Context, id string) error
	TopRanked(ctx context.Context, n int) ([]*entities.University, error)
	OpenAdmissions(ctx context.Context, limit int) ([]*entities.University, error)
	Locations(ctx context.Context) (*entities.UniversityLocations, error)
}

// UniversityHandler handles university endpoints
type UniversityHandler struct {
	service UniversityService
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(service UniversityService) *UniversityHandler {
	return &UniversityHandler{service: service}
}

// ListUniversities lists universities
// GET /api/v1/universities?province=&type=&ranking=&limit=&page=
func (h *UniversityHandler) ListUniversities(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"universities": items, "count": len(items)})
}

// SearchUniversities matches name or description
// GET /api/v1/universities/search?q=
func (h *UniversityHandler) SearchUniversities(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.Search(c.Request.Context(), c.Query("q"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"universities": items, "count": len(items)})
}

// TopRanked returns the best ranked universities
// GET /api/v1/universities/top?n=
func (h *UniversityHandler) TopRanked(c *gin.Context) {
	n, err := queryInt(c, "n")
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.TopRanked(c.Request.Context(), n)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"universities": items, "count": len(items)})
}

// OpenAdmissions lists universities accepting applications
// GET /api/v1/universities/open-admissions?limit=
func (h *UniversityHandler) OpenAdmissions(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.OpenAdmissions(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"universities": items, "count": len(items)})
}

// Locations lists the provinces and cities universities are in
// GET /api/v1/universities/locations
func (h *UniversityHandler) Locations(c *gin.Context) {
	locations, err := h.service.Locations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"locations": locations})
}

// GetUniversity gets a university by ID
// GET /api/v1/universities/:id
func (h *UniversityHandler) GetUniversity(c *gin.Context) {
	u, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"university": u})
}

// GetPrograms lists a university's programs
// GET /api/v1/universities/:id/programs
func (h *UniversityHandler) GetPrograms(c *gin.Context) {
	items, err := h.service.GetPrograms(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"programs": items, "count": len(items)})
}

// CreateUniversity creates a university
// POST /api/v1/universities
func (h *UniversityHandler) CreateUniversity(c *gin.Context) {
	var input entities.University
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

// UpdateUniversity merges fields into a university
// PUT /api/v1/universities/:id
func (h *UniversityHandler) UpdateUniversity(c *gin.Context) {
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

	u, err := h.service.Get(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"university": u})
}

// DeleteUniversity deletes a university
// DELETE /api/v1/universities/:id
func (h *UniversityHandler) DeleteUniversity(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "University deleted successfully"})
}

func bindFilter(c *gin.Context) (entities.UniversityFilter, error) {
	filter := entities.UniversityFilter{
		Province: strings.TrimSpace(c.Query("province")),
		Type:     entities.UniversityType(strings.TrimSpace(c.Query("type"))),
	}
	if raw := c.Query("ranking"); raw != "" {
		ranking, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, domainerrors.BadRequest("Invalid ranking parameter")
		}
		filter.Ranking = ranking
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return filter, err
	}
	if filter.Page, err = queryInt(c, "page"); err != nil {
		return filter, err
	}
	return filter, nil
}
