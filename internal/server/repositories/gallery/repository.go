// Package gallery persists the ordered image gallery.
package gallery

import (
	"context"

	"github.com/dmitrijs2005/carvingsite/internal/server/models"
)

type Repository interface {
	GetAll(ctx context.Context) ([]models.GalleryImage, error)
	GetByID(ctx context.Context, id int64) (*models.GalleryImage, error)
	// Create appends img after the current last position unless
	// img.Order is positive.
	Create(ctx context.Context, img *models.GalleryImage) (*models.GalleryImage, error)
	Update(ctx context.Context, id int64, patch models.GalleryImagePatch) (*models.GalleryImage, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SetOrder(ctx context.Context, id int64, order int) (bool, error)
	// Reorder assigns position i+1 to ids[i]. Unknown ids are skipped.
	// Callers wanting atomicity bind the repository to a transaction.
	Reorder(ctx context.Context, ids []int64) error
}
