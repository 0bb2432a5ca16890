package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yohannes19/sbms/internal/config"
	"github.com/Yohannes19/sbms/internal/utils"
)

const testSecret = "cache-test-secret"

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

// newCachedServer builds the production chain for the protected group:
// JWTAuth first, the response cache behind it.
func newCachedServer(t *testing.T, h echo.HandlerFunc) *echo.Echo {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := echo.New()
	g := e.Group("/v1", JWTAuth(testSecret), NewRedisCache(cacheTestConfig(), rdb))
	g.GET("/tenants", h)
	return e
}

func bearerFor(t *testing.T, userID uint64) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, userID, RoleStaff, 5)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func doGet(e *echo.Echo, target, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// A warmed cache must never answer a request the auth gate would have
// rejected: anonymous callers get 401 even when a HIT is available.
func TestCachedRouteStillRequiresToken(t *testing.T) {
	e := newCachedServer(t, func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"tenants": []string{"confidential"}})
	})
	auth := bearerFor(t, 7)

	rec := doGet(e, "/v1/tenants", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = doGet(e, "/v1/tenants", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	rec = doGet(e, "/v1/tenants", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "confidential")
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

// Cache keys carry the authenticated user, so one user's cached
// response is never replayed to another.
func TestCacheKeyScopedToUser(t *testing.T) {
	e := newCachedServer(t, func(c echo.Context) error {
		id, _ := c.Get("user_id").(uint64)
		return c.JSON(http.StatusOK, echo.Map{"user_id": id})
	})

	rec := doGet(e, "/v1/tenants", bearerFor(t, 1))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Contains(t, rec.Body.String(), `"user_id":1`)

	rec = doGet(e, "/v1/tenants", bearerFor(t, 2))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Contains(t, rec.Body.String(), `"user_id":2`)

	rec = doGet(e, "/v1/tenants", bearerFor(t, 1))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Contains(t, rec.Body.String(), `"user_id":1`)
}
