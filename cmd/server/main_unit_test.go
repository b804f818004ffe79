package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapemyuni.backend/internal/config"
	"scrapemyuni.backend/internal/domain/repositories"
	plog "scrapemyuni.backend/pkg/logger"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenStore := openStore
	origNewMetrics := newMetrics
	origRunServer := runServer

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openStore = origOpenStore
		newMetrics = origNewMetrics
		runServer = origRunServer
	})

	loadDotenv = func(...string) error { return nil }
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
}

func baseTestConfig(t *testing.T) func() *config.Config {
	path := filepath.Join(t.TempDir(), "server.db")
	return func() *config.Config {
		return &config.Config{
			Server: config.ServerConfig{
				Port: "18080",
				Env:  "development",
			},
			Store: config.StoreConfig{
				Driver:     config.StoreDriverSQLite,
				SQLitePath: path,
			},
			Redis: config.RedisConfig{
				URL: "redis://localhost:6379",
			},
			Jobs: config.JobsConfig{
				AdmissionStatusSchedule: "0 0 2 * * *",
				AdmissionStatusEnabled:  false,
			},
		}
	}
}

func TestRunMainProcess_RedisInitError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig(t)
	initRedis = func(string, string) error { return errors.New("redis down") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestRunMainProcess_SkipsRedisWithoutURL(t *testing.T) {
	withMainHooks(t)
	base := baseTestConfig(t)
	loadCfg = func() *config.Config {
		cfg := base()
		cfg.Redis.URL = ""
		return cfg
	}
	initRedis = func(string, string) error {
		t.Fatal("redis must not be initialized without a URL")
		return nil
	}
	runServer = func(context.Context, http.Handler, string) error { return nil }

	require.NoError(t, runMainProcess())
}

func TestRunMainProcess_StoreOpenError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig(t)
	openStore = func(context.Context, *config.Config) (repositories.DocumentStore, func() error, error) {
		return nil, nil, errors.New("store open failed")
	}

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document store")
}

func TestRunMainProcess_MetricsRegistrationError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig(t)
	newMetrics = func() *prometheus.Registry {
		reg := prometheus.NewRegistry()
		reg.MustRegister(prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "taken",
		}, []string{"method", "path", "status"}))
		return reg
	}
	runServer = func(context.Context, http.Handler, string) error { return nil }

	require.Error(t, runMainProcess())
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig(t)
	runServer = func(context.Context, http.Handler, string) error { return errors.New("listen failed") }

	err := runMainProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen failed")
}

func TestRunMainProcess_ServesRoutes(t *testing.T) {
	withMainHooks(t)
	loadCfg = baseTestConfig(t)

	var port string
	runServer = func(_ context.Context, h http.Handler, p string) error {
		port = p

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), serviceName)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

		body := `{"name":"Alpha University","type":"public","location":{"city":"Karachi","province":"Sindh"}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/universities", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/universities/search?q=alpha", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Alpha University")

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/universities/locations", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"locations":{"provinces":["Sindh"],"cities":["Karachi"]}}`, rec.Body.String())

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"totalUniversities":1`)

		req = httptest.NewRequest(http.MethodPost, "/api/v1/applications", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-1")
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/applications/user", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "http_requests_total")
		return nil
	}

	require.NoError(t, runMainProcess())
	assert.Equal(t, "18080", port)
}

func TestRunServer_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, http.NotFoundHandler(), "0") }()

	cancel()
	require.NoError(t, <-done)
}
