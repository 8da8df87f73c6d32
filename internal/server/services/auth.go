// Package services contains the server-side business logic. Services
// orchestrate repositories through unit-of-work scopes: every write path
// opens a uow.Tx, commits explicitly and closes on all exits; read paths go
// through a Readonly scope bound straight to the pool.
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
	"github.com/ummataliyev/estatehub/internal/server/uow"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// dummyDigest is a valid bcrypt digest of a throwaway value. Login verifies
// against it when the email is unknown, so the unknown-email and
// wrong-password paths cost roughly the same time.
const dummyDigest = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AuthService handles registration, login and the token lifecycle.
type AuthService struct {
	db     *sql.DB
	tokens *auth.TokenService
	hasher auth.PasswordHasher
	logger logging.Logger
}

func NewAuthService(db *sql.DB, tokens *auth.TokenService, hasher auth.PasswordHasher, logger logging.Logger) *AuthService {
	return &AuthService{
		db:     db,
		tokens: tokens,
		hasher: hasher,
		logger: logger.With("service", "auth"),
	}
}

// Register creates a user with the given credentials and signs them in.
// A duplicate active email is reported as common.ErrAlreadyExists.
func (s *AuthService) Register(ctx context.Context, email, password string) (user *models.User, pair *TokenPair, err error) {
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: email and password are required", common.ErrInvalidArgument)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password: %w", err)
	}

	tx, err := uow.Begin(ctx, s.db)
	if err != nil {
		return nil, nil, err
	}
	defer func() { err = errors.Join(err, tx.Close()) }()

	user, err = tx.Users.Create(ctx, email, digest)
	if err != nil {
		return nil, nil, fmt.Errorf("creating user: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, nil, err
	}

	pair, err = s.pair(user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, pair, nil
}

// Login verifies the credentials and mints a fresh token pair. Unknown email
// and wrong password both come back as common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	ro := uow.NewReadonly(s.db)

	user, err := ro.Users.GetByEmailOrNone(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		s.hasher.Verify(password, dummyDigest)
		return nil, common.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.pair(user)
}

// RefreshAccessToken validates a refresh token and rotates the whole pair.
// Presenting an access token here is rejected with ErrInvalidTokenType.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	user, err := s.resolve(ctx, refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return s.pair(user)
}

// GetCurrentUser resolves an access token to its active user.
func (s *AuthService) GetCurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	return s.resolve(ctx, accessToken, auth.TokenTypeAccess)
}

// resolve decodes a token, enforces its type claim and loads the active user
// it names. A token for a deleted user fails the lookup with ErrNotFound.
func (s *AuthService) resolve(ctx context.Context, token, wantType string) (*models.User, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("%w: want %q, got %q", common.ErrInvalidTokenType, wantType, claims.TokenType)
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := uow.NewReadonly(s.db).Users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	return user, nil
}

func (s *AuthService) pair(user *models.User) (*TokenPair, error) {
	access, err := s.tokens.CreateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: signing access token: %v", common.ErrInternal, err)
	}
	refresh, err := s.tokens.CreateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: signing refresh token: %v", common.ErrInternal, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
