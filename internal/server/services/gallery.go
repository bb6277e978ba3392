package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/carvingsite/internal/common"
	"github.com/dmitrijs2005/carvingsite/internal/dbx"
	"github.com/dmitrijs2005/carvingsite/internal/server/models"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/repomanager"
)

// GalleryCategory is the image directory owned by the gallery.
const GalleryCategory = "gallery"

type GalleryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ObjectRemover
}

// NewGalleryService constructs a GalleryService. images may be nil, which
// disables cleanup on delete.
func NewGalleryService(db *sql.DB, m repomanager.RepositoryManager, images ObjectRemover) *GalleryService {
	return &GalleryService{db: db, repomanager: m, images: images}
}

// List returns the gallery in display order.
func (s *GalleryService) List(ctx context.Context) ([]models.GalleryImage, error) {
	return s.repomanager.Gallery(s.db).GetAll(ctx)
}

func (s *GalleryService) Get(ctx context.Context, id int64) (*models.GalleryImage, error) {
	return s.repomanager.Gallery(s.db).GetByID(ctx, id)
}

// Create appends img to the end of the gallery unless it carries a
// positive order.
func (s *GalleryService) Create(ctx context.Context, img *models.GalleryImage) (*models.GalleryImage, error) {
	if err := validateStruct(img); err != nil {
		return nil, err
	}
	if img.Order < 0 {
		return nil, invalid("order", "order must be positive")
	}

	img.ID = 0
	return s.repomanager.Gallery(s.db).Create(ctx, img)
}

func (s *GalleryService) Update(ctx context.Context, id int64, patch models.GalleryImagePatch) (*models.GalleryImage, error) {
	return s.repomanager.Gallery(s.db).Update(ctx, id, patch)
}

// Delete removes the image record and then tries to remove its file when
// it lives under gallery/. Remaining positions are not renumbered.
func (s *GalleryService) Delete(ctx context.Context, id int64) (bool, CleanupResult, error) {
	repo := s.repomanager.Gallery(s.db)

	current, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, CleanupResult{}, nil
		}
		return false, CleanupResult{}, err
	}

	deleted, err := repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, CleanupResult{}, err
	}

	return true, removeUnder(ctx, s.images, GalleryCategory, current.Src), nil
}

// Reorder assigns positions 1..len(ids) in the given sequence within one
// transaction and returns the gallery as re-read afterwards. Ids unknown
// to the store are ignored; images not listed keep their position.
func (s *GalleryService) Reorder(ctx context.Context, ids []int64) ([]models.GalleryImage, error) {
	if err := checkImageIDs(ids); err != nil {
		return nil, err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Gallery(tx).Reorder(ctx, ids)
	})
	if err != nil {
		return nil, err
	}

	return s.List(ctx)
}

func checkImageIDs(ids []int64) error {
	if len(ids) == 0 {
		return invalid("imageIds", "imageIds must be a non-empty array")
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return invalid("imageIds", "imageIds must contain positive ids")
		}
		if _, dup := seen[id]; dup {
			return invalid("imageIds", "imageIds must not contain duplicates")
		}
		seen[id] = struct{}{}
	}
	return nil
}
