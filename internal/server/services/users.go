package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ummataliyev/estatehub/internal/common"
	"github.com/ummataliyev/estatehub/internal/logging"
	"github.com/ummataliyev/estatehub/internal/server/auth"
	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/base"
	"github.com/ummataliyev/estatehub/internal/server/repositories/users"
	"github.com/ummataliyev/estatehub/internal/server/uow"
)

// defaultPageSize is used when a list request does not name a page size.
const defaultPageSize = 10

// clampPage normalizes a requested page size against the configured ceiling.
func clampPage(limit, maxPageSize int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// UserPatch is a partial-update request. Fields left unset are not touched;
// Password may be replaced but never cleared.
type UserPatch struct {
	Email    base.Opt[string]
	Password base.Opt[string]
}

// UserService exposes CRUD over users, hashing passwords on the way in.
type UserService struct {
	db          *sql.DB
	hasher      auth.PasswordHasher
	maxPageSize int
	logger      logging.Logger
}

func NewUserService(db *sql.DB, hasher auth.PasswordHasher, maxPageSize int, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		hasher:      hasher,
		maxPageSize: maxPageSize,
		logger:      logger.With("service", "users"),
	}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return uow.NewReadonly(s.db).Users.GetByID(ctx, id)
}

// List returns one page of active users plus the total active count.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, int, error) {
	return uow.NewReadonly(s.db).Users.List(ctx, clampPage(limit, s.maxPageSize), offset)
}

func (s *UserService) Create(ctx context.Context, email, password string) (user *models.User, err error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrInvalidArgument)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	user, err = tx.Users.Create(ctx, email, digest)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update. A null email or password is rejected:
// both columns are NOT NULL by schema and the error should be caught before
// the database round trip.
func (s *UserService) Update(ctx context.Context, id int64, patch UserPatch) (user *models.User, err error) {
	if patch.Email.IsNull() || patch.Password.IsNull() {
		return nil, fmt.Errorf("%w: email and password cannot be null", common.ErrInvalidArgument)
	}

	upd := users.Update{Email: patch.Email}
	if v, ok := patch.Password.Value(); ok {
		digest, err := s.hasher.Hash(v)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		upd.PasswordHash = base.Set(digest)
	}

	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	user, err = tx.Users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete soft-deletes the user and returns the row as stamped.
func (s *UserService) Delete(ctx context.Context, id int64) (user *models.User, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	user, err = tx.Users.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user deleted", "user_id", id)
	return user, nil
}

// DeleteMany soft-deletes the given ids, skipping already-deleted ones, and
// reports how many rows were affected.
func (s *UserService) DeleteMany(ctx context.Context, ids []int64) (n int64, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return 0, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	n, err = tx.Users.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *UserService) Restore(ctx context.Context, id int64) (user *models.User, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	user, err = tx.Users.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) RestoreMany(ctx context.Context, ids []int64) (n int64, err error) {
	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return 0, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	n, err = tx.Users.RestoreMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *UserService) Count(ctx context.Context) (int, error) {
	return uow.NewReadonly(s.db).Users.Count(ctx)
}
