// Package auth implements the token service and the password hasher.
//
// Tokens are HMAC-signed JWTs. Access and refresh tokens share one secret
// and one algorithm and differ only in lifetime and an embedded type claim.
// Decode verifies signature and expiry but does not check the type claim;
// different call sites expect different types, so that check belongs to the
// caller.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ummataliyev/estatehub/internal/common"
)

// Token type claims.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims carries the registered claims plus the user's email and the
// access/refresh discriminator.
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	TokenType string `json:"type"`
}

// UserID parses the subject claim back into a user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject %q", common.ErrInvalidToken, c.Subject)
	}
	return id, nil
}

// TokenService issues and validates signed, time-boxed credentials.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService builds a TokenService. algorithm must be one of the HMAC
// family (HS256, HS384, HS512); anything else is rejected so a mistyped
// config value cannot silently downgrade signing.
func NewTokenService(secret string, algorithm string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok || method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm: %q", algorithm)
	}
	return &TokenService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

func (s *TokenService) issue(userID int64, email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(s.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:     email,
		TokenType: tokenType,
	})
	return token.SignedString(s.secret)
}

// CreateAccessToken issues a short-lived access token for the user.
func (s *TokenService) CreateAccessToken(userID int64, email string) (string, error) {
	return s.issue(userID, email, TokenTypeAccess, s.accessTTL)
}

// CreateRefreshToken issues a long-lived refresh token for the user.
func (s *TokenService) CreateRefreshToken(userID int64, email string) (string, error) {
	return s.issue(userID, email, TokenTypeRefresh, s.refreshTTL)
}

// Decode verifies the signature and expiry and returns the claims.
// Expired tokens are rejected before anything else about them is trusted.
func (s *TokenService) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
