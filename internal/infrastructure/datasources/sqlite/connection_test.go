package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewConnection_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	db, err := NewConnection(path)
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, sqlDB.Ping())
	require.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestNewConnection_OpenFailure(t *testing.T) {
	orig := openDialector
	t.Cleanup(func() { openDialector = orig })
	openDialector = func(string) gorm.Dialector {
		return orig(filepath.Join(t.TempDir(), "missing", "dir", "store.db"))
	}

	db, err := NewConnection("ignored")
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to open sqlite database")
}
