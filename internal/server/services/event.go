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

// EventCategory is the image directory owned by events.
const EventCategory = "events"

type EventService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ObjectRemover
}

// NewEventService constructs an EventService. images may be nil, which
// disables cleanup on delete.
func NewEventService(db *sql.DB, m repomanager.RepositoryManager, images ObjectRemover) *EventService {
	return &EventService{db: db, repomanager: m, images: images}
}

// List returns every event, earliest start date first.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.repomanager.Events(s.db).GetAll(ctx)
}

func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	return s.repomanager.Events(s.db).GetByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	if err := validateStruct(e); err != nil {
		return nil, err
	}
	if err := checkDateRange(e); err != nil {
		return nil, err
	}

	e.ID = 0
	return s.repomanager.Events(s.db).Create(ctx, e)
}

// Update merges patch over the stored event. The date range is checked on
// the merged result, inside the same transaction as the write.
func (s *EventService) Update(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error) {
	var updated *models.Event

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Events(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		merged := *current
		patch.Apply(&merged)
		if err := checkDateRange(&merged); err != nil {
			return err
		}

		updated, err = repo.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the event and then tries to remove its image when the
// image lives under events/. It reports false for an unknown id.
func (s *EventService) Delete(ctx context.Context, id int64) (bool, CleanupResult, error) {
	repo := s.repomanager.Events(s.db)

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

	return true, removeUnder(ctx, s.images, EventCategory, current.Image), nil
}

func checkDateRange(e *models.Event) error {
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return nil
	}
	if e.StartDate.After(e.EndDate) {
		return invalid("startDate", "startDate must not be after endDate")
	}
	return nil
}
