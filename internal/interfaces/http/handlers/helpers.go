package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/interfaces/http/middleware"
)

// bindPatch reads a JSON object body for partial updates
func bindPatch(c *gin.Context) (map[string]interface{}, error) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		return nil, domainerrors.BadRequest("Invalid JSON body")
	}
	if len(fields) == 0 {
		return nil, domainerrors.BadRequest("Update body must not be empty")
	}
	return fields, nil
}

// queryInt parses an optional non-negative integer query parameter
func queryInt(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domainerrors.BadRequest("Invalid " + name + " parameter")
	}
	return n, nil
}

// requireUser returns the caller identity or an Unauthorized error
func requireUser(c *gin.Context) (string, error) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return "", domainerrors.Unauthorized("User not authenticated")
	}
	return userID, nil
}
