package events

import (
	"context"

	"github.com/dmitrijs2005/carvingsite/internal/dbx"
	"github.com/dmitrijs2005/carvingsite/internal/server/models"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/crud"
)

// Events without a start date sort after dated ones on every dialect.
var mapping = crud.Mapping[models.Event]{
	Entity:  "event",
	Table:   "events",
	Columns: []string{"title", "date", "location", "description", "image", "start_date", "end_date"},
	OrderBy: "start_date IS NULL, start_date, id",
	Values: func(e *models.Event) []any {
		return []any{e.Title, e.Date, e.Location, e.Description, e.Image, e.StartDate, e.EndDate}
	},
	Fields: func(e *models.Event) []any {
		return []any{&e.ID, &e.Title, &e.Date, &e.Location, &e.Description, &e.Image, &e.StartDate, &e.EndDate}
	},
}

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	*crud.Repository[models.Event]
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{Repository: crud.New(db, dialect, mapping)}
}

// Update merges the non-empty fields of patch into the stored event.
func (r *SQLRepository) Update(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error) {
	return r.Repository.Update(ctx, id, patch.Apply)
}
