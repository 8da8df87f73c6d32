package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ummataliyev/estatehub/internal/logging"
	"github.com/ummataliyev/estatehub/internal/server/models"
)

func testDeps() *Deps {
	return &Deps{
		Logger:    logging.NewNopLogger(),
		Metrics:   NewMetrics(),
		Auth:      &fakeAuthService{currentUser: testUser()},
		Users:     &fakeUserService{users: []*models.User{testUser()}, total: 1},
		Complexes: &fakeComplexService{},
		Buildings: &fakeBuildingService{},
		Media:     &fakeMediaService{key: "photos/k", url: "http://signed"},
	}
}

func TestRouter_Healthz(t *testing.T) {
	router := NewRouter(testDeps())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_Healthz_Degraded(t *testing.T) {
	deps := testDeps()
	deps.Ping = func(ctx context.Context) error { return errors.New("db down") }
	router := NewRouter(deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := NewRouter(testDeps())

	// generate one request so a series exists
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "estatehub_http_requests_total")
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := NewRouter(testDeps())

	for _, path := range []string{"/api/users", "/api/complexes", "/api/buildings/1", "/api/photos/download-url"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}

func TestRouter_ProtectedRouteWithToken(t *testing.T) {
	router := NewRouter(testDeps())

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+testAccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthRoutesAreOpen(t *testing.T) {
	router := NewRouter(testDeps())

	// no bearer header; a 401 here would mean the gate covers too much
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router := NewRouter(testDeps())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))

	// a client-supplied id is echoed back
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, "client-id-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "client-id-1", rec.Header().Get(headerRequestID))
}

func TestRouter_RateLimit(t *testing.T) {
	deps := testDeps()
	deps.RateLimiter = NewRateLimiter(1, 2)
	defer deps.RateLimiter.Stop()
	router := NewRouter(deps)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	// burst of 2 passes, the third is throttled
	assert.NotEqual(t, http.StatusTooManyRequests, statuses[0])
	assert.NotEqual(t, http.StatusTooManyRequests, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])

	// a different client has its own bucket
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.NotEqual(t, http.StatusTooManyRequests, rec.Code)
}

func TestRouter_HealthzNotRateLimited(t *testing.T) {
	deps := testDeps()
	deps.RateLimiter = NewRateLimiter(1, 1)
	defer deps.RateLimiter.Stop()
	router := NewRouter(deps)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "10.0.0.3:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRecovery_PanicBecomes500(t *testing.T) {
	handler := Recovery(logging.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
