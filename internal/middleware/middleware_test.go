package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/appointment-booking/internal/config"
	"github.com/iliyamo/appointment-booking/internal/session"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "test:cache",
		MaxBodyBytes: 1 << 20,
	}
}

func do(e *echo.Echo, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRedisCacheServesRepeatFromCache(t *testing.T) {
	rdb := newRedis(t)
	var calls atomic.Int32
	e := echo.New()
	e.Use(NewRedisCache(cacheConfig(), rdb, "inv-1"))
	e.GET("/v1/provinces/:id/cities", func(c echo.Context) error {
		calls.Add(1)
		return c.JSON(http.StatusOK, echo.Map{"province": c.Param("id")})
	})

	first := do(e, http.MethodGet, "/v1/provinces/gauteng/cities", nil)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := do(e, http.MethodGet, "/v1/provinces/gauteng/cities", nil)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Contains(t, second.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)

	other := do(e, http.MethodGet, "/v1/provinces/limpopo/cities", nil)
	assert.Equal(t, "MISS", other.Header().Get("X-Cache"))
	assert.Contains(t, other.Body.String(), "limpopo")
	assert.EqualValues(t, 2, calls.Load())
}

func TestRedisCacheIsScopedToInventory(t *testing.T) {
	rdb := newRedis(t)
	handler := func(c echo.Context) error { return c.String(http.StatusOK, "slots") }

	a := echo.New()
	a.Use(NewRedisCache(cacheConfig(), rdb, "inv-a"))
	a.GET("/v1/slots/search", handler)
	b := echo.New()
	b.Use(NewRedisCache(cacheConfig(), rdb, "inv-b"))
	b.GET("/v1/slots/search", handler)

	do(a, http.MethodGet, "/v1/slots/search?branch=bellville", nil)
	assert.Equal(t, "HIT", do(a, http.MethodGet, "/v1/slots/search?branch=bellville", nil).Header().Get("X-Cache"))
	assert.Equal(t, "MISS", do(b, http.MethodGet, "/v1/slots/search?branch=bellville", nil).Header().Get("X-Cache"))
}

func TestRedisCacheFallsBackToDefaultTTL(t *testing.T) {
	rdb := newRedis(t)
	cfg := cacheConfig()
	cfg.TTL = 0
	var calls atomic.Int32
	e := echo.New()
	e.Use(NewRedisCache(cfg, rdb, "inv"))
	e.GET("/v1/services", func(c echo.Context) error {
		calls.Add(1)
		return c.String(http.StatusOK, "services")
	})

	assert.Equal(t, "MISS", do(e, http.MethodGet, "/v1/services", nil).Header().Get("X-Cache"))
	assert.Equal(t, "HIT", do(e, http.MethodGet, "/v1/services", nil).Header().Get("X-Cache"))
	assert.EqualValues(t, 1, calls.Load())
}

func TestRedisCacheSkipsErrorsAndOtherMethods(t *testing.T) {
	rdb := newRedis(t)
	e := echo.New()
	e.Use(NewRedisCache(cacheConfig(), rdb, "inv"))
	e.GET("/missing", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "nope"})
	})
	e.POST("/v1/bookings", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })

	do(e, http.MethodGet, "/missing", nil)
	assert.Equal(t, "MISS", do(e, http.MethodGet, "/missing", nil).Header().Get("X-Cache"))
	assert.Empty(t, do(e, http.MethodPost, "/v1/bookings", nil).Header().Get("X-Cache"))
}

func TestRedisCacheDisabledWithoutClient(t *testing.T) {
	e := echo.New()
	e.Use(NewRedisCache(cacheConfig(), nil, "inv"))
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	rec := do(e, http.MethodGet, "/x", nil)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestTokenBucketBlocksAfterCapacity(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            2 * time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "test:rl",
	}
	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb))
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	hdr := map[string]string{echo.HeaderXRealIP: "10.0.0.1"}
	first := do(e, http.MethodGet, "/x", hdr)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/x", hdr).Code)

	blocked := do(e, http.MethodGet, "/x", hdr)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	other := do(e, http.MethodGet, "/x", map[string]string{echo.HeaderXRealIP: "10.0.0.2"})
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestBuildRateKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/slots/search", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.9")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/slots/search")

	cfg := config.RateLimitConfig{Prefix: "rl"}
	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:10.0.0.9", buildRateKey(cfg, c))
	cfg.KeyStrategy = "session"
	assert.Equal(t, "rl:session:anon", buildRateKey(cfg, c))

	c.Set(sessionIDKey, "sid-1")
	cfg.KeyStrategy = ""
	assert.Equal(t, "rl:ip:10.0.0.9:session:sid-1:route:GET /v1/slots/search", buildRateKey(cfg, c))
}

func TestSessionAuth(t *testing.T) {
	issuer := session.NewIssuer("secret", time.Minute)
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		cl, ok := SessionClaims(c)
		require.True(t, ok)
		return c.String(http.StatusOK, cl.FirstName+":"+sessionID(c))
	}, SessionAuth(issuer))

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/me", map[string]string{
		echo.HeaderAuthorization: "Bearer junk",
	}).Code)

	tok, err := issuer.Issue(session.Identity{IDKind: "passport", IDNumber: "A1234567", FirstName: "Lerato", LastName: "Mokoena"})
	require.NoError(t, err)
	rec := do(e, http.MethodGet, "/me", map[string]string{echo.HeaderAuthorization: "Bearer " + tok.Token})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Lerato:"+tok.SessionID, rec.Body.String())
}
