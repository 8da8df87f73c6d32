package httpapi

import (
	"context"
	"time"

	"github.com/ummataliyev/estatehub/internal/common"
	"github.com/ummataliyev/estatehub/internal/server/models"
	"github.com/ummataliyev/estatehub/internal/server/repositories/buildings"
	"github.com/ummataliyev/estatehub/internal/server/repositories/complexes"
	"github.com/ummataliyev/estatehub/internal/server/services"
)

const testAccessToken = "test-access-token"

func testUser() *models.User {
	return &models.User{
		ID:        1,
		Email:     "a@x.com",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

type fakeAuthService struct {
	registerUser *models.User
	registerPair *services.TokenPair
	registerErr  error

	loginPair *services.TokenPair
	loginErr  error

	refreshPair *services.TokenPair
	refreshErr  error

	currentUser *models.User
	currentErr  error
}

func (f *fakeAuthService) Register(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error) {
	return f.registerUser, f.registerPair, f.registerErr
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	return f.loginPair, f.loginErr
}

func (f *fakeAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return f.refreshPair, f.refreshErr
}

func (f *fakeAuthService) GetCurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	if accessToken != testAccessToken {
		return nil, common.ErrInvalidToken
	}
	return f.currentUser, nil
}

type fakeUserService struct {
	user    *models.User
	users   []*models.User
	total   int
	err     error
	n       int64
	gotID   int64
	gotPage [2]int
	patch   services.UserPatch
}

func (f *fakeUserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.gotID = id
	return f.user, f.err
}

func (f *fakeUserService) List(ctx context.Context, limit, offset int) ([]*models.User, int, error) {
	f.gotPage = [2]int{limit, offset}
	return f.users, f.total, f.err
}

func (f *fakeUserService) Create(ctx context.Context, email, password string) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeUserService) Update(ctx context.Context, id int64, patch services.UserPatch) (*models.User, error) {
	f.gotID = id
	f.patch = patch
	return f.user, f.err
}

func (f *fakeUserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	f.gotID = id
	return f.user, f.err
}

func (f *fakeUserService) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	return f.n, f.err
}

func (f *fakeUserService) Restore(ctx context.Context, id int64) (*models.User, error) {
	f.gotID = id
	return f.user, f.err
}

func (f *fakeUserService) RestoreMany(ctx context.Context, ids []int64) (int64, error) {
	return f.n, f.err
}

type fakeComplexService struct {
	complex *models.Complex
	items   []*models.Complex
	total   int
	err     error
	n       int64
	gotUpd  complexes.Update
}

func (f *fakeComplexService) GetByID(ctx context.Context, id int64) (*models.Complex, error) {
	return f.complex, f.err
}

func (f *fakeComplexService) List(ctx context.Context, limit, offset int) ([]*models.Complex, int, error) {
	return f.items, f.total, f.err
}

func (f *fakeComplexService) Create(ctx context.Context, name, address string) (*models.Complex, error) {
	return f.complex, f.err
}

func (f *fakeComplexService) Import(ctx context.Context, items []*models.Complex) error {
	return f.err
}

func (f *fakeComplexService) Update(ctx context.Context, id int64, upd complexes.Update) (*models.Complex, error) {
	f.gotUpd = upd
	return f.complex, f.err
}

func (f *fakeComplexService) Delete(ctx context.Context, id int64) (*models.Complex, error) {
	return f.complex, f.err
}

func (f *fakeComplexService) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	return f.n, f.err
}

func (f *fakeComplexService) Restore(ctx context.Context, id int64) (*models.Complex, error) {
	return f.complex, f.err
}

func (f *fakeComplexService) RestoreMany(ctx context.Context, ids []int64) (int64, error) {
	return f.n, f.err
}

type fakeBuildingService struct {
	building *models.Building
	items    []*models.Building
	total    int
	err      error
	gotUpd   buildings.Update
}

func (f *fakeBuildingService) GetByID(ctx context.Context, id int64) (*models.Building, error) {
	return f.building, f.err
}

func (f *fakeBuildingService) ListByComplex(ctx context.Context, complexID int64, limit, offset int) ([]*models.Building, int, error) {
	return f.items, f.total, f.err
}

func (f *fakeBuildingService) Create(ctx context.Context, complexID int64, name string, floors int) (*models.Building, error) {
	return f.building, f.err
}

func (f *fakeBuildingService) Update(ctx context.Context, id int64, upd buildings.Update) (*models.Building, error) {
	f.gotUpd = upd
	return f.building, f.err
}

func (f *fakeBuildingService) Delete(ctx context.Context, id int64) (*models.Building, error) {
	return f.building, f.err
}

func (f *fakeBuildingService) Restore(ctx context.Context, id int64) (*models.Building, error) {
	return f.building, f.err
}

type fakeMediaService struct {
	key string
	url string
	err error
}

func (f *fakeMediaService) GetUploadURL(ctx context.Context) (string, string, error) {
	return f.key, f.url, f.err
}

func (f *fakeMediaService) GetDownloadURL(ctx context.Context, key string) (string, error) {
	return f.url, f.err
}
