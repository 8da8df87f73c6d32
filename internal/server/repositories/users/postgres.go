package users

import (
	"context"
	"database/sql"

	"github.com/ummataliyev/estatehub/internal/dbx"
	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/base"
)

var descriptor = base.Descriptor[models.User]{
	Table:   "users",
	Columns: []string{"id", "email", "password_hash", "created_at", "updated_at", "deleted_at"},
	Scan: func(row base.Scanner) (*models.User, error) {
		var u models.User
		var deletedAt sql.NullTime
		if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		if deletedAt.Valid {
			u.DeletedAt = &deletedAt.Time
		}
		return &u, nil
	},
}

type PostgresRepository struct {
	base *base.Repository[models.User]
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{base: base.New(db, descriptor)}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.base.GetOne(ctx, base.Filter{"id": id})
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.base.GetOne(ctx, base.Filter{"email": email})
}

func (r *PostgresRepository) GetByEmailOrNone(ctx context.Context, email string) (*models.User, error) {
	return r.base.GetOneOrNone(ctx, base.Filter{"email": email})
}

func (r *PostgresRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	return r.base.Add(ctx, base.Values{"email": email, "password_hash": passwordHash})
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*models.User, int, error) {
	return r.base.GetAll(ctx, limit, offset, nil)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, upd Update) (*models.User, error) {
	return r.base.UpdateOne(ctx, upd.values(), base.Filter{"id": id})
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	return r.base.DeleteOne(ctx, base.Filter{"id": id})
}

func (r *PostgresRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	return r.base.DeleteBulk(ctx, ids)
}

func (r *PostgresRepository) Restore(ctx context.Context, id int64) (*models.User, error) {
	return r.base.RestoreOne(ctx, base.Filter{"id": id})
}

func (r *PostgresRepository) RestoreMany(ctx context.Context, ids []int64) (int64, error) {
	return r.base.RestoreBulk(ctx, ids)
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	return r.base.Count(ctx, nil)
}
