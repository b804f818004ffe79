package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapemyuni.backend/internal/usecases"
)

func TestUserHandler_ProfileLifecycle(t *testing.T) {
	h := NewUserHandler(usecases.NewUserService(newSQLiteStore(t), nil, nil))
	r := newTestRouter()
	r.POST("/users", h.CreateProfile)
	r.GET("/users/me", h.GetProfile)
	r.PUT("/users/me", h.UpdateProfile)
	r.DELETE("/users/me", h.DeleteProfile)
	r.POST("/users/me/login", h.RecordLogin)

	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodGet, "/users/me", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/users/me", "user-1", nil).Code)

	rec := doJSON(t, r, http.MethodPost, "/users", "user-1", map[string]interface{}{
		"email":    "sana@example.com",
		"name":     "Sana Khan",
		"province": "Punjab",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decodeBody(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "user-1", user["id"])
	assert.Equal(t, "user", user["role"])

	rec = doJSON(t, r, http.MethodPut, "/users/me", "user-1", map[string]interface{}{"grades": "A"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A", decodeBody(t, rec)["user"].(map[string]interface{})["grades"])

	assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodPut, "/users/me", "user-1", map[string]interface{}{"role": "admin"}).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodPut, "/users/me", "user-1", map[string]interface{}{"emailVerified": true}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, doJSON(t, r, http.MethodPut, "/users/me", "user-1", map[string]interface{}{"createdAt": "2001-01-01T00:00:00Z"}).Code)
	rec = doJSON(t, r, http.MethodGet, "/users/me", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "user", profile["role"])
	assert.Equal(t, false, profile["emailVerified"])

	require.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodPost, "/users/me/login", "user-1", nil).Code)
	rec = doJSON(t, r, http.MethodGet, "/users/me", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, decodeBody(t, rec)["user"].(map[string]interface{})["lastLogin"])

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodDelete, "/users/me", "user-1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/users/me", "user-1", nil).Code)
}

func TestUserHandler_CreateValidation(t *testing.T) {
	h := NewUserHandler(usecases.NewUserService(newSQLiteStore(t), nil, nil))
	r := newTestRouter()
	r.POST("/users", h.CreateProfile)

	rec := doJSON(t, r, http.MethodPost, "/users", "user-1", map[string]interface{}{"email": "not-an-email", "name": "X"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
