package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/carvingsite/internal/dbx"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/events"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/gallery"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)
	m := NewRepositoryManager(dbx.Postgres)

	assert.IsType(t, &events.SQLRepository{}, m.Events(db))
	assert.IsType(t, &gallery.SQLRepository{}, m.Gallery(db))
}

func TestRunMigrations_Success(t *testing.T) {
	db := newDB(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	for _, d := range []dbx.Dialect{dbx.Postgres, dbx.SQLite} {
		m := NewRepositoryManager(d)
		assert.NoError(t, m.RunMigrations(context.Background(), db), d.Name)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db := newDB(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	err := NewRepositoryManager(dbx.Postgres).RunMigrations(context.Background(), db)
	assert.EqualError(t, err, "boom")
}

func TestRunMigrations_SQLiteSchema(t *testing.T) {
	ctx := context.Background()
	db, err := dbx.Open(ctx, dbx.SQLite, ":memory:", dbx.PoolOptions{MaxOpenConns: 1})
	require.NoError(t, err)
	defer db.Close()

	m := NewRepositoryManager(dbx.SQLite)
	require.NoError(t, m.RunMigrations(ctx, db))
	// a second run is a no-op
	require.NoError(t, m.RunMigrations(ctx, db))

	for _, table := range []string{"events", "gallery"} {
		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
		assert.Zero(t, n, table)
	}
}
