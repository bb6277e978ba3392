package gallery

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/carvingsite/internal/dbx"
	"github.com/dmitrijs2005/carvingsite/internal/server/models"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/crud"
)

const (
	table       = "gallery"
	orderColumn = "order_position"
)

var mapping = crud.Mapping[models.GalleryImage]{
	Entity:  "gallery image",
	Table:   table,
	Columns: []string{"src", "alt", orderColumn},
	OrderBy: orderColumn + ", id",
	Values: func(g *models.GalleryImage) []any {
		return []any{g.Src, g.Alt, g.Order}
	},
	Fields: func(g *models.GalleryImage) []any {
		return []any{&g.ID, &g.Src, &g.Alt, &g.Order}
	},
}

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	*crud.Repository[models.GalleryImage]
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{Repository: crud.New(db, dialect, mapping)}
}

// Create computes the next position inside the INSERT itself, so the
// max+1 read and the write happen in one statement.
func (r *SQLRepository) Create(ctx context.Context, img *models.GalleryImage) (*models.GalleryImage, error) {
	if img.Order > 0 {
		return r.Repository.Create(ctx, img)
	}

	next := fmt.Sprintf("(SELECT COALESCE(MAX(%s), 0) + 1 FROM %s)", orderColumn, table)
	return r.Insert(ctx, []string{r.Placeholder(1), r.Placeholder(2), next}, img.Src, img.Alt)
}

// Update merges src and alt. The stored order is kept.
func (r *SQLRepository) Update(ctx context.Context, id int64, patch models.GalleryImagePatch) (*models.GalleryImage, error) {
	return r.Repository.Update(ctx, id, patch.Apply)
}

func (r *SQLRepository) SetOrder(ctx context.Context, id int64, order int) (bool, error) {
	return r.SetColumn(ctx, id, orderColumn, order)
}

func (r *SQLRepository) Reorder(ctx context.Context, ids []int64) error {
	for i, id := range ids {
		if _, err := r.SetOrder(ctx, id, i+1); err != nil {
			return err
		}
	}
	return nil
}
