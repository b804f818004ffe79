package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scrapemyuni.backend/internal/infrastructure/datasources/sqlite"
	"scrapemyuni.backend/internal/infrastructure/repositories"
)

func newSQLiteStore(t *testing.T) *repositories.GormDocumentStore {
	t.Helper()
	db, err := sqlite.NewConnection(":memory:")
	require.NoError(t, err)

	store := repositories.NewGormDocumentStore(db)
	require.NoError(t, store.AutoMigrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}
