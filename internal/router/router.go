// Package router registers the HTTP routes of the appointment API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/appointment-booking/internal/config"
	"github.com/iliyamo/appointment-booking/internal/handler"
	"github.com/iliyamo/appointment-booking/internal/middleware"
	"github.com/iliyamo/appointment-booking/internal/session"
)

// Deps carries everything the routes need. Redis may be nil, in which case
// caching and rate limiting are pass-through.
type Deps struct {
	Health   *handler.HealthHandler
	Catalog  *handler.CatalogHandler
	Slots    *handler.SlotHandler
	Session  *handler.SessionHandler
	Bookings *handler.BookingHandler

	Issuer      *session.Issuer
	Redis       *redis.Client
	Cache       config.CacheConfig
	RateLimit   config.RateLimitConfig
	InventoryID string
}

// New builds the echo instance with the request validator installed and
// every route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	RegisterRoutes(e, d)
	return e
}

// RegisterRoutes mounts health, metrics and the /v1 API on e.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", d.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis)
	cache := middleware.NewRedisCache(d.Cache, d.Redis, d.InventoryID)

	// Read-only lookups over the frozen inventory are safe to cache.
	pub := e.Group("/v1", limit, cache)
	pub.GET("/provinces", d.Catalog.ListProvinces)
	pub.GET("/provinces/with-slots", d.Catalog.ListProvincesWithSlots)
	pub.GET("/provinces/:id/cities", d.Catalog.ListCitiesOfProvince)
	pub.GET("/provinces/:id/branch", d.Catalog.BranchForProvince)
	pub.GET("/cities/:id/branches", d.Catalog.ListBranchesOfCity)
	pub.GET("/services", d.Catalog.ListServices)
	pub.GET("/slots/search", d.Slots.Search)

	e.POST("/v1/session", d.Session.Start, limit)

	// Session auth runs first so the limiter keys on the session id.
	auth := e.Group("/v1/bookings", middleware.SessionAuth(d.Issuer), limit)
	auth.POST("", d.Bookings.Create)
	auth.GET("/:reference", d.Bookings.Get)
}
