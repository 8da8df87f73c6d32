package buildings

import (
	"context"
	"database/sql"

	"github.com/ummataliyev/estatehub/internal/dbx"
	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/base"
)

var descriptor = base.Descriptor[models.Building]{
	Table:   "buildings",
	Columns: []string{"id", "complex_id", "name", "floors", "created_at", "updated_at", "deleted_at"},
	Scan: func(row base.Scanner) (*models.Building, error) {
		var b models.Building
		var deletedAt sql.NullTime
		if err := row.Scan(&b.ID, &b.ComplexID, &b.Name, &b.Floors, &b.CreatedAt, &b.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		if deletedAt.Valid {
			b.DeletedAt = &deletedAt.Time
		}
		return &b, nil
	},
}

type PostgresRepository struct {
	base *base.Repository[models.Building]
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{base: base.New(db, descriptor)}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Building, error) {
	return r.base.GetOne(ctx, base.Filter{"id": id})
}

func (r *PostgresRepository) Create(ctx context.Context, complexID int64, name string, floors int) (*models.Building, error) {
	return r.base.Add(ctx, base.Values{"complex_id": complexID, "name": name, "floors": floors})
}

func (r *PostgresRepository) ListByComplex(ctx context.Context, complexID int64, limit, offset int) ([]*models.Building, int, error) {
	return r.base.GetAll(ctx, limit, offset, base.Filter{"complex_id": complexID})
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, upd Update) (*models.Building, error) {
	return r.base.UpdateOne(ctx, upd.values(), base.Filter{"id": id})
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.Building, error) {
	return r.base.DeleteOne(ctx, base.Filter{"id": id})
}

func (r *PostgresRepository) Restore(ctx context.Context, id int64) (*models.Building, error) {
	return r.base.RestoreOne(ctx, base.Filter{"id": id})
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	return r.base.Count(ctx, nil)
}
