package users

import (
	"context"

	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/base"
)

// Update is a partial-update payload. A field left unset is not written;
// base.SetNull writes SQL NULL explicitly.
type Update struct {
	Email        base.Opt[string]
	PasswordHash base.Opt[string]
}

func (u Update) values() base.Values {
	v := base.Values{}
	u.Email.Apply(v, "email")
	u.PasswordHash.Apply(v, "password_hash")
	return v
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmailOrNone(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, int, error)
	Update(ctx context.Context, id int64, upd Update) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	Restore(ctx context.Context, id int64) (*models.User, error)
	RestoreMany(ctx context.Context, ids []int64) (int64, error)
	Count(ctx context.Context) (int, error)
}
