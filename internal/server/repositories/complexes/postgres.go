package complexes

import (
	"context"
	"database/sql"

	"github.com/ummataliyev/estatehub/internal/dbx"
	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/base"
)

var descriptor = base.Descriptor[models.Complex]{
	Table:   "complexes",
	Columns: []string{"id", "name", "address", "created_at", "updated_at", "deleted_at"},
	Scan: func(row base.Scanner) (*models.Complex, error) {
		var c models.Complex
		var deletedAt sql.NullTime
		if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		if deletedAt.Valid {
			c.DeletedAt = &deletedAt.Time
		}
		return &c, nil
	},
}

type PostgresRepository struct {
	base *base.Repository[models.Complex]
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{base: base.New(db, descriptor)}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Complex, error) {
	return r.base.GetOne(ctx, base.Filter{"id": id})
}

func (r *PostgresRepository) GetByNameOrNone(ctx context.Context, name string) (*models.Complex, error) {
	return r.base.GetOneOrNone(ctx, base.Filter{"name": name})
}

func (r *PostgresRepository) Create(ctx context.Context, name, address string) (*models.Complex, error) {
	return r.base.Add(ctx, base.Values{"name": name, "address": address})
}

func (r *PostgresRepository) CreateBulk(ctx context.Context, items []*models.Complex) error {
	payloads := make([]base.Values, len(items))
	for i, item := range items {
		payloads[i] = base.Values{"name": item.Name, "address": item.Address}
	}
	return r.base.AddBulk(ctx, payloads)
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*models.Complex, int, error) {
	return r.base.GetAll(ctx, limit, offset, nil)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, upd Update) (*models.Complex, error) {
	return r.base.UpdateOne(ctx, upd.values(), base.Filter{"id": id})
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.Complex, error) {
	return r.base.DeleteOne(ctx, base.Filter{"id": id})
}

func (r *PostgresRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	return r.base.DeleteBulk(ctx, ids)
}

func (r *PostgresRepository) Restore(ctx context.Context, id int64) (*models.Complex, error) {
	return r.base.RestoreOne(ctx, base.Filter{"id": id})
}

func (r *PostgresRepository) RestoreMany(ctx context.Context, ids []int64) (int64, error) {
	return r.base.RestoreBulk(ctx, ids)
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	return r.base.Count(ctx, nil)
}
