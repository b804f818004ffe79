package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
)

func TestStatsHandler_GetDashboard(t *testing.T) {
	svc := &statsServiceStub{stats: &entities.DashboardStats{
		TotalUniversities: 12,
		TotalUsers:        4,
		TotalApplications: 7,
		PendingScrapeJobs: 1,
	}}
	r := newTestRouter()
	r.GET("/admin/stats", NewStatsHandler(svc).GetDashboard)

	rec := doJSON(t, r, http.MethodGet, "/admin/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody(t, rec)["stats"].(map[string]interface{})
	assert.EqualValues(t, 12, stats["totalUniversities"])
	assert.EqualValues(t, 4, stats["totalUsers"])
	assert.EqualValues(t, 7, stats["totalApplications"])
	assert.EqualValues(t, 1, stats["pendingScrapeJobs"])
	assert.EqualValues(t, 0, stats["pendingScrapeRequests"])

	svc.err = domainerrors.BackendUnavailable(errors.New("store down"))
	rec = doJSON(t, r, http.MethodGet, "/admin/stats", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
