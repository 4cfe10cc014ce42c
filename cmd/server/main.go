package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/iliyamo/appointment-booking/internal/booking"
	"github.com/iliyamo/appointment-booking/internal/config"
	"github.com/iliyamo/appointment-booking/internal/geo"
	"github.com/iliyamo/appointment-booking/internal/handler"
	"github.com/iliyamo/appointment-booking/internal/logger"
	"github.com/iliyamo/appointment-booking/internal/metrics"
	"github.com/iliyamo/appointment-booking/internal/queue"
	"github.com/iliyamo/appointment-booking/internal/router"
	"github.com/iliyamo/appointment-booking/internal/service"
	"github.com/iliyamo/appointment-booking/internal/session"
	"github.com/iliyamo/appointment-booking/internal/slot"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewSlotMetrics(prometheus.DefaultRegisterer)
	slotCfg := config.LoadSlotConfig()
	gen := slot.DefaultGeneratorConfig()
	gen.SelectionRatio = slotCfg.SelectionRatio
	gen.WindowDays = slotCfg.WindowDays

	slots := slot.NewService(geo.Default(), slot.Options{
		Generator:               gen,
		Delay:                   slotCfg.SearchDelay,
		MaxSuggestions:          slotCfg.MaxSuggestions,
		MaxNeighbourSuggestions: slotCfg.MaxNeighbourSuggestions,
		Logger:                  zl.Named("slot"),
		Metrics:                 m,
	})
	st := slots.Stats()
	m.SetInventory(st.Slots, st.ActiveBranches)

	publisher := service.NewQueuePublisher(cfg.RabbitMQURL, zl.Named("publisher"))
	bookings := booking.NewService(slots, booking.Options{
		Publisher: publisher,
		Metrics:   m,
		Logger:    zl.Named("booking"),
		Delay:     slotCfg.BookDelay,
	})

	consumer := queue.NewBookingConsumer(cfg.RabbitMQURL, "", zl.Named("consumer"))
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zl.Error("booking consumer stopped", zap.Error(err))
		}
	}()

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		zl.Warn("redis unavailable; cache and rate limiting disabled")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	issuer := session.NewIssuer(cfg.SessionKey, cfg.SessionTTL)
	e := router.New(router.Deps{
		Health:      &handler.HealthHandler{Slots: slots},
		Catalog:     &handler.CatalogHandler{Slots: slots},
		Slots:       &handler.SlotHandler{Slots: slots, Log: zl},
		Session:     &handler.SessionHandler{Issuer: issuer, Log: zl},
		Bookings:    &handler.BookingHandler{Bookings: bookings, Log: zl},
		Issuer:      issuer,
		Redis:       rdb,
		Cache:       config.LoadCacheConfig(),
		RateLimit:   config.LoadRateLimitConfig(),
		InventoryID: uuid.NewString(),
	})

	addr := ":" + cfg.Port
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown failed", zap.Error(err))
	}
}
