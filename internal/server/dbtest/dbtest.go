// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/carvingsite/internal/dbx"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/repomanager"
)

// Open returns a fresh, migrated database and its repository manager.
// The database lives until the test ends.
func Open(t testing.TB) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	ctx := context.Background()

	// One connection keeps every statement on the same :memory: database.
	db, err := dbx.Open(ctx, dbx.SQLite, ":memory:", dbx.PoolOptions{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewRepositoryManager(dbx.SQLite)
	if err := m.RunMigrations(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db, m
}
