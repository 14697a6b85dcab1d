package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stagepass/stagepass/internal/auth"
	"github.com/stagepass/stagepass/internal/config"
	"github.com/stagepass/stagepass/internal/metrics"
	"github.com/stagepass/stagepass/internal/migrations"
	"github.com/stagepass/stagepass/internal/postgres"
	redisx "github.com/stagepass/stagepass/internal/redis"
	postgresrepo "github.com/stagepass/stagepass/internal/repository/postgres"
	redisrepo "github.com/stagepass/stagepass/internal/repository/redis"
	"github.com/stagepass/stagepass/internal/service"
	"github.com/stagepass/stagepass/internal/service/booking"
	"github.com/stagepass/stagepass/internal/service/catalog"
	httpgin "github.com/stagepass/stagepass/internal/transport/http/gin"
	"github.com/stagepass/stagepass/internal/worker"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	refresher  *worker.AvailabilityRefresher
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	pgxPool, err := postgres.New(context.Background(), postgres.Config{
		DSN: cfg.Postgres.DSN(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	if cfg.Postgres.AutoMigrate {
		if err := migrations.Up(pgxPool); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	rdb, err := redisx.New(context.Background(), redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisx.NewAvailabilityPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(
		rdb,
		redisx.RateLimitPrefix("booking"),
		cfg.RateLimit.BookingLimit,
		cfg.RateLimit.BookingWindow,
	)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	m := metrics.New()

	// Initialize services
	services := service.NewServices(store, cache, pubsub, limiter, tokens, m, logger, service.Config{
		Booking: booking.Config{},
		Catalog: catalog.Config{},
	})

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, tokens, m, logger)

	refresher := worker.NewAvailabilityRefresher(
		pubsub,
		store.Inventory(),
		cache,
		5*time.Second,
		logger,
	)

	return &App{
		cfg:       cfg,
		logger:    logger,
		refresher: refresher,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Availability refresher runs until shutdown
	g.Go(func() error {
		if err := a.refresher.Run(gCtx); err != nil && err != context.Canceled {
			return fmt.Errorf("availability refresher: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
