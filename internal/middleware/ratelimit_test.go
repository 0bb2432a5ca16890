package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Yohannes19/sbms/internal/config"
)

func rateCtx(e *echo.Echo) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/v1/tenants", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/tenants")
	return c
}

// Registered behind JWTAuth the limiter keys on the real user id, not
// a shared anonymous bucket.
func TestRateKeyUsesAuthenticatedUser(t *testing.T) {
	e := echo.New()
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}

	c := rateCtx(e)
	c.Set("user_id", uint64(42))
	assert.Contains(t, buildRateKey(cfg, c), ":user:42:")

	anon := rateCtx(e)
	assert.Contains(t, buildRateKey(cfg, anon), ":user:anon:")
}

func TestRateKeyStrategies(t *testing.T) {
	e := echo.New()
	c := rateCtx(e)
	c.Set("user_id", uint64(9))

	key := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user_route"}, c)
	assert.Equal(t, "rl:user:9:route:GET /v1/tenants", key)

	key = buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "route"}, c)
	assert.Equal(t, "rl:route:GET /v1/tenants", key)
}
