package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ummataliyev/estatehub/internal/common"
	"github.com/ummataliyev/estatehub/internal/logging"
	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/buildings"
	"github.com/ummataliyev/estatehub/internal/server/uow"
)

// BuildingService exposes CRUD over buildings. Every building belongs to a
// complex; creation checks the parent inside the same transaction so a
// concurrent delete of the complex cannot race past the check.
type BuildingService struct {
	db          *sql.DB
	maxPageSize int
	logger      logging.Logger
}

func NewBuildingService(db *sql.DB, maxPageSize int, logger logging.Logger) *BuildingService {
	return &BuildingService{
		db:          db,
		maxPageSize: maxPageSize,
		logger:      logger.With("service", "buildings"),
	}
}

func (s *BuildingService) GetByID(ctx context.Context, id int64) (*models.Building, error) {
	return uow.NewReadonly(s.db).Buildings.GetByID(ctx, id)
}

// ListByComplex returns a page of the complex's buildings. The parent is
// checked first so an unknown complex id reads as ErrNotFound, not as an
// empty page.
func (s *BuildingService) ListByComplex(ctx context.Context, complexID int64, limit, offset int) ([]*models.Building, int, error) {
	ro := uow.NewReadonly(s.db)
	if _, err := ro.Complexes.GetByID(ctx, complexID); err != nil {
		return nil, 0, fmt.Errorf("complex %d: %w", complexID, err)
	}
	return ro.Buildings.ListByComplex(ctx, complexID, clampPage(limit, s.maxPageSize), offset)
}

func (s *BuildingService) Create(ctx context.Context, complexID int64, name string, floors int) (b *models.Building, err error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrInvalidArgument)
	}
	if floors < 1 {
		return nil, fmt.Errorf("%w: floors must be positive", common.ErrInvalidArgument)
	}

	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	if _, err = tx.Complexes.GetByID(ctx, complexID); err != nil {
		return nil, fmt.Errorf("complex %d: %w", complexID, err)
	}

	b, err = tx.Buildings.Create(ctx, complexID, name, floors)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BuildingService) Update(ctx context.Context, id int64, upd buildings.Update) (b *models.Building, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	b, err = tx.Buildings.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BuildingService) Delete(ctx context.Context, id int64) (b *models.Building, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	b, err = tx.Buildings.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BuildingService) Restore(ctx context.Context, id int64) (b *models.Building, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	b, err = tx.Buildings.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BuildingService) Count(ctx context.Context) (int, error) {
	return uow.NewReadonly(s.db).Buildings.Count(ctx)
}
