package complexes

import (
	"context"

	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/base"
)

// Update is a partial-update payload for complexes.
type Update struct {
	Name    base.Opt[string]
	Address base.Opt[string]
}

func (u Update) values() base.Values {
	v := base.Values{}
	u.Name.Apply(v, "name")
	u.Address.Apply(v, "address")
	return v
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.Complex, error)
	GetByNameOrNone(ctx context.Context, name string) (*models.Complex, error)
	Create(ctx context.Context, name, address string) (*models.Complex, error)
	CreateBulk(ctx context.Context, items []*models.Complex) error
	List(ctx context.Context, limit, offset int) ([]*models.Complex, int, error)
	Update(ctx context.Context, id int64, upd Update) (*models.Complex, error)
	Delete(ctx context.Context, id int64) (*models.Complex, error)
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	Restore(ctx context.Context, id int64) (*models.Complex, error)
	RestoreMany(ctx context.Context, ids []int64) (int64, error)
	Count(ctx context.Context) (int, error)
}
