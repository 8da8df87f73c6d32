package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ummataliyev/estatehub/internal/common"
	"github.com/ummataliyev/estatehub/internal/logging"
	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/complexes"
	"github.com/ummataliyev/estatehub/internal/server/uow"
)

// ComplexService exposes CRUD over residential complexes.
type ComplexService struct {
	db          *sql.DB
	maxPageSize int
	logger      logging.Logger
}

func NewComplexService(db *sql.DB, maxPageSize int, logger logging.Logger) *ComplexService {
	return &ComplexService{
		db:          db,
		maxPageSize: maxPageSize,
		logger:      logger.With("service", "complexes"),
	}
}

func (s *ComplexService) GetByID(ctx context.Context, id int64) (*models.Complex, error) {
	return uow.NewReadonly(s.db).Complexes.GetByID(ctx, id)
}

func (s *ComplexService) List(ctx context.Context, limit, offset int) ([]*models.Complex, int, error) {
	return uow.NewReadonly(s.db).Complexes.List(ctx, clampPage(limit, s.maxPageSize), offset)
}

func (s *ComplexService) Create(ctx context.Context, name, address string) (c *models.Complex, err error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrInvalidArgument)
	}

	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	c, err = tx.Complexes.Create(ctx, name, address)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

// Import inserts a batch of complexes in one transaction; either the whole
// batch lands or none of it does.
func (s *ComplexService) Import(ctx context.Context, items []*models.Complex) (err error) {
	for _, item := range items {
		if item.Name == "" {
			return fmt.Errorf("%w: name is required", common.ErrInvalidArgument)
		}
	}

	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	if err = tx.Complexes.CreateBulk(ctx, items); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	s.logger.Info(ctx, "complexes imported", "count", len(items))
	return nil
}

func (s *ComplexService) Update(ctx context.Context, id int64, upd complexes.Update) (c *models.Complex, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	c, err = tx.Complexes.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComplexService) Delete(ctx context.Context, id int64) (c *models.Complex, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	c, err = tx.Complexes.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComplexService) DeleteMany(ctx context.Context, ids []int64) (n int64, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return 0, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	n, err = tx.Complexes.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *ComplexService) Restore(ctx context.Context, id int64) (c *models.Complex, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	c, err = tx.Complexes.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComplexService) RestoreMany(ctx context.Context, ids []int64) (n int64, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return 0, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	n, err = tx.Complexes.RestoreMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *ComplexService) Count(ctx context.Context) (int, error) {
	return uow.NewReadonly(s.db).Complexes.Count(ctx)
}
