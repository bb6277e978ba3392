// Package events persists the site's event listings.
package events

import (
	"context"

	"github.com/dmitrijs2005/carvingsite/internal/server/models"
)

type Repository interface {
	GetAll(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
	Update(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
