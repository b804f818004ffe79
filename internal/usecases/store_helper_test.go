package usecases_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"scrapemyuni.backend/internal/infrastructure/repositories"
)

func newSQLiteStore(t *testing.T) *repositories.GormDocumentStore {
	t.Helper()
	dsn := fmt.Sprintf("file:usecases_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := repositories.NewGormDocumentStore(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

func intPtr(v int) *int { return &v }
