// Package storagetest opens throwaway ledger stores for tests.
package storagetest

import (
	"path/filepath"
	"testing"

	"ordertracker/internal/adapters/out/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLite returns a migrated SQLite store living in the test's temp dir.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "ledger.db")
	db, err := storage.Open(storage.DriverSQLite, dsn, storage.PoolOptions{}, nil)
	require.NoError(t, err)
	require.NoError(t, storage.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
