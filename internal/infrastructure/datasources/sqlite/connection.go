package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var openDialector = sqlite.Open

// NewConnection opens (or creates) a sqlite database file. ":memory:" gives
// a private in-memory database.
func NewConnection(path string) (*gorm.DB, error) {
	db, err := gorm.Open(openDialector(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	// sqlite serialises writers; one connection keeps in-memory databases shared
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
