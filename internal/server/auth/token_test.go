package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ummataliyev/estatehub/internal/common"
)

func newTestService(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService("super-secret", "HS256", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	return s
}

func TestNewTokenService_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("k", "RS256", time.Hour, time.Hour)
	require.Error(t, err)

	_, err = NewTokenService("k", "none", time.Hour, time.Hour)
	require.Error(t, err)

	_, err = NewTokenService("k", "nonsense", time.Hour, time.Hour)
	require.Error(t, err)
}

func TestCreateAndDecode_AccessToken(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	tok, err := s.CreateAccessToken(123, "a@x.com")
	require.NoError(t, err)

	claims, err := s.Decode(tok)
	require.NoError(t, err)

	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "a@x.com", claims.Email)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)
}

func TestCreateAndDecode_RefreshToken(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	tok, err := s.CreateRefreshToken(7, "b@x.com")
	require.NoError(t, err)

	claims, err := s.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestDecode_Expired(t *testing.T) {
	t.Parallel()

	s, err := NewTokenService("secret", "HS256", -1*time.Second, -1*time.Second)
	require.NoError(t, err)

	tok, err := s.CreateAccessToken(1, "a@x.com")
	require.NoError(t, err)

	_, err = s.Decode(tok)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestDecode_WrongSecret(t *testing.T) {
	t.Parallel()

	right := newTestService(t)
	wrong, err := NewTokenService("other-secret", "HS256", time.Hour, time.Hour)
	require.NoError(t, err)

	tok, err := right.CreateAccessToken(1, "a@x.com")
	require.NoError(t, err)

	_, err = wrong.Decode(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDecode_Garbage(t *testing.T) {
	t.Parallel()
	s := newTestService(t)

	_, err := s.Decode("not.a.jwt")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDecode_AlgorithmConfusionRejected(t *testing.T) {
	t.Parallel()

	hs512, err := NewTokenService("secret", "HS512", time.Hour, time.Hour)
	require.NoError(t, err)
	hs256, err := NewTokenService("secret", "HS256", time.Hour, time.Hour)
	require.NoError(t, err)

	tok, err := hs512.CreateAccessToken(1, "a@x.com")
	require.NoError(t, err)

	_, err = hs256.Decode(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestClaims_UserID_BadSubject(t *testing.T) {
	t.Parallel()

	c := &Claims{}
	c.Subject = "not-a-number"
	_, err := c.UserID()
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
