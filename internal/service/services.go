package service

import (
	"log/slog"

	"github.com/stagepass/stagepass/internal/auth"
	"github.com/stagepass/stagepass/internal/metrics"
	redisx "github.com/stagepass/stagepass/internal/redis"
	postgres "github.com/stagepass/stagepass/internal/repository/postgres"
	redis "github.com/stagepass/stagepass/internal/repository/redis"
	"github.com/stagepass/stagepass/internal/service/accounts"
	"github.com/stagepass/stagepass/internal/service/artists"
	"github.com/stagepass/stagepass/internal/service/booking"
	"github.com/stagepass/stagepass/internal/service/catalog"
	"github.com/stagepass/stagepass/internal/service/organizer"
)

type Services struct {
	Booking   *booking.Service
	Catalog   *catalog.Service
	Organizer *organizer.Service
	Artists   *artists.Service
	Accounts  *accounts.Service
}

type Config struct {
	Booking booking.Config
	Catalog catalog.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redisx.AvailabilityPubSub,
	limiter *redis.SlidingWindowLimiter,
	tokens *auth.TokenManager,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg Config,
) *Services {
	return &Services{
		Booking: booking.New(
			store.Inventory(),
			store.Bookings(),
			store.Catalog(),
			cache,
			pubsub,
			limiter,
			m,
			logger,
			cfg.Booking,
		),
		Catalog:   catalog.New(store, cache, cfg.Catalog),
		Organizer: organizer.New(store),
		Artists:   artists.New(store),
		Accounts:  accounts.New(store, tokens),
	}
}
