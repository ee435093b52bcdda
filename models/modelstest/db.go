// Package modelstest opens throwaway in-memory databases for tests.
package modelstest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/retailops/returns-complaints/models"
)

// Open returns an empty migrated in-memory SQLite database with foreign keys
// enforced. A single connection is used so every query sees the same data.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := models.OpenDialector(context.Background(), sqlite.Open(dsn), models.PoolOptions{MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = models.Close(db) })

	require.NoError(t, models.Migrate(context.Background(), db))
	return db
}

// OpenSeeded is Open followed by the reference products and reasons.
func OpenSeeded(t testing.TB) *gorm.DB {
	t.Helper()

	db := Open(t)
	require.NoError(t, models.Seed(context.Background(), db))
	return db
}
