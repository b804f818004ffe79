package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"scrapemyuni.backend/internal/domain/entities"
	"scrapemyuni.backend/internal/interfaces/http/middleware"
)

type universityServiceStub struct {
	listFn      func(entities.UniversityFilter) ([]*entities.University, error)
	getFn       func(string) (*entities.University, error)
	searchFn    func(string, entities.UniversityFilter) ([]*entities.University, error)
	programsFn  func(string) ([]*entities.Program, error)
	addFn       func(*entities.University) (string, error)
	updateFn    func(string, map[string]interface{}) error
	removeFn    func(string) error
	topFn       func(int) ([]*entities.University, error)
	admissionFn func(int) ([]*entities.University, error)
	locationsFn func() (*entities.UniversityLocations, error)
}

func (s *universityServiceStub) List(_ context.Context, f entities.UniversityFilter) ([]*entities.University, error) {
	return s.listFn(f)
}
func (s *universityServiceStub) Get(_ context.Context, id string) (*entities.University, error) {
	return s.getFn(id)
}
func (s *universityServiceStub) Search(_ context.Context, term string, f entities.UniversityFilter) ([]*entities.University, error) {
	return s.searchFn(term, f)
}
func (s *universityServiceStub) GetPrograms(_ context.Context, id string) ([]*entities.Program, error) {
	return s.programsFn(id)
}
func (s *universityServiceStub) Add(_ context.Context, u *entities.University) (string, error) {
	return s.addFn(u)
}
func (s *universityServiceStub) Update(_ context.Context, id string, fields map[string]interface{}) error {
	return s.updateFn(id, fields)
}
func (s *universityServiceStub) Remove(_ context.Context, id string) error { return s.removeFn(id) }
func (s *universityServiceStub) TopRanked(_ context.Context, n int) ([]*entities.University, error) {
	return s.topFn(n)
}
func (s *universityServiceStub) OpenAdmissions(_ context.Context, limit int) ([]*entities.University, error) {
	return s.admissionFn(limit)
}
func (s *universityServiceStub) Locations(context.Context) (*entities.UniversityLocations, error) {
	return s.locationsFn()
}

type statsServiceStub struct {
	stats *entities.DashboardStats
	err   error
}

func (s *statsServiceStub) Dashboard(context.Context) (*entities.DashboardStats, error) {
	return s.stats, s.err
}

type applicationServiceStub struct {
	listFn   func(string, entities.ApplicationStatus) ([]*entities.Application, error)
	getFn    func(string, string) (*entities.Application, error)
	createFn func(string, *entities.ApplicationCreateInput) (*entities.Application, error)
	updateFn func(string, string, map[string]interface{}) (*entities.Application, error)
	statusFn func(string, string, *entities.ApplicationStatusInput) (*entities.Application, error)
	deleteFn func(string, string) error
}

func (s *applicationServiceStub) ListByUser(_ context.Context, userID string, status entities.ApplicationStatus) ([]*entities.Application, error) {
	return s.listFn(userID, status)
}
func (s *applicationServiceStub) Get(_ context.Context, userID, id string) (*entities.Application, error) {
	return s.getFn(userID, id)
}
func (s *applicationServiceStub) Create(_ context.Context, userID string, in *entities.ApplicationCreateInput) (*entities.Application, error) {
	return s.createFn(userID, in)
}
func (s *applicationServiceStub) Update(_ context.Context, userID, id string, fields map[string]interface{}) (*entities.Application, error) {
	return s.updateFn(userID, id, fields)
}
func (s *applicationServiceStub) UpdateStatus(_ context.Context, userID, id string, in *entities.ApplicationStatusInput) (*entities.Application, error) {
	return s.statusFn(userID, id, in)
}
func (s *applicationServiceStub) Delete(_ context.Context, userID, id string) error {
	return s.deleteFn(userID, id)
}

// doJSON runs one request through r with the caller identity header set
// when userID is not empty.
func doJSON(t *testing.T, r http.Handler, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.IdentityMiddleware())
	return r
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
