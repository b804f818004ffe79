package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrapemyuni.backend/internal/config"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/infrastructure/bootstrap"
	"scrapemyuni.backend/internal/infrastructure/datasources"
	plog "scrapemyuni.backend/pkg/logger"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origOpenStore := openStore

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		openStore = origOpenStore
	})

	loadDotenv = func(...string) error { return errors.New("no .env") }
	initLog = plog.Init
}

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Env: "development"},
		Store: config.StoreConfig{
			Driver:     config.StoreDriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "bootstrap.db"),
		},
	}
}

type brokenStore struct {
	repositories.DocumentStore
}

func (brokenStore) Set(context.Context, string, string, map[string]interface{}) error {
	return errors.New("permission denied")
}

func TestRun_Success(t *testing.T) {
	withMainHooks(t)
	cfg := sqliteConfig(t)
	loadCfg = func() *config.Config { return cfg }

	assert.Equal(t, 0, run())

	// a second run over the same file is fine
	assert.Equal(t, 0, run())

	store, closeStore, err := datasources.OpenDocumentStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStore()

	docs, err := store.Find(context.Background(), repositories.CollectionScrapeRequests, repositories.Query{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, bootstrap.TemplateID, docs[0].ID)
}

func TestRun_OpenStoreError(t *testing.T) {
	withMainHooks(t)
	loadCfg = func() *config.Config { return sqliteConfig(t) }
	openStore = func(context.Context, *config.Config) (repositories.DocumentStore, func() error, error) {
		return nil, nil, errors.New("connection refused")
	}

	assert.Equal(t, 1, run())
}

func TestRun_WriteFailure(t *testing.T) {
	withMainHooks(t)
	loadCfg = func() *config.Config { return sqliteConfig(t) }
	closed := false
	openStore = func(context.Context, *config.Config) (repositories.DocumentStore, func() error, error) {
		return brokenStore{}, func() error {
			closed = true
			return nil
		}, nil
	}

	assert.Equal(t, 1, run())
	assert.True(t, closed)
}
