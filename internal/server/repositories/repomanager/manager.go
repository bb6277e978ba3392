package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/carvingsite/internal/dbx"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/events"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/gallery"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Events(db dbx.DBTX) events.Repository
	Gallery(db dbx.DBTX) gallery.Repository
}
