// Package repomanager provides a RepositoryManager that vends SQL-backed
// repositories for one dialect and applies its migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/carvingsite/internal/dbx"
	"github.com/dmitrijs2005/carvingsite/internal/server/migrations"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/events"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/gallery"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager binds repositories to a DBTX using the placeholders
// of its dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// Events returns an events.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewSQLRepository(db, m.dialect)
}

// Gallery returns a gallery.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Gallery(db dbx.DBTX) gallery.Repository {
	return gallery.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	fsys, err := migrations.For(m.dialect.Name)
	if err != nil {
		return fmt.Errorf("migrations for %s: %w", m.dialect.Name, err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(m.dialect.Goose); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewRepositoryManager constructs a RepositoryManager for the dialect.
func NewRepositoryManager(dialect dbx.Dialect) RepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}
