package buildings

import (
	"context"

	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/base"
)

// Update is a partial-update payload for buildings.
type Update struct {
	Name   base.Opt[string]
	Floors base.Opt[int]
}

func (u Update) values() base.Values {
	v := base.Values{}
	u.Name.Apply(v, "name")
	u.Floors.Apply(v, "floors")
	return v
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.Building, error)
	Create(ctx context.Context, complexID int64, name string, floors int) (*models.Building, error)
	ListByComplex(ctx context.Context, complexID int64, limit, offset int) ([]*models.Building, int, error)
	Update(ctx context.Context, id int64, upd Update) (*models.Building, error)
	Delete(ctx context.Context, id int64) (*models.Building, error)
	Restore(ctx context.Context, id int64) (*models.Building, error)
	Count(ctx context.Context) (int, error)
}
