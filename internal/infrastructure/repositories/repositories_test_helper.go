package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func newTestStore(t *testing.T) *GormDocumentStore {
	t.Helper()
	store := NewGormDocumentStore(newTestDB(t))
	require.NoError(t, store.AutoMigrate())
	return store
}

func mustAdd(t *testing.T, store *GormDocumentStore, collection string, fields map[string]interface{}) string {
	t.Helper()
	id, err := store.Add(context.Background(), collection, fields)
	require.NoError(t, err)
	return id
}
