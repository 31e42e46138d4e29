package cli

import (
	"log"
	"os"

	"github.com/example/room-schedule/internal/cache"
	"github.com/example/room-schedule/internal/clock"
	"github.com/example/room-schedule/internal/domain/reservation"
	"github.com/example/room-schedule/internal/infrastructure/config"
	"github.com/example/room-schedule/internal/infrastructure/cove"
)

// app carries what every command needs. Tests swap the constructors.
type app struct {
	loadConfig func() (config.Config, error)
	newSource  func(cfg config.Config, logger *log.Logger) (reservation.Source, func(), error)
	clock      clock.Clock
	logger     *log.Logger
}

func defaultApp() *app {
	return &app{
		loadConfig: config.Load,
		newSource:  newCoveSource,
		clock:      clock.NewSystem(),
		logger:     log.New(os.Stderr, "", log.LstdFlags),
	}
}

// newCacheFor picks Redis when REDIS_ADDR is set, otherwise an in-process
// cache. The returned func releases it.
func newCacheFor(cfg config.Config, c clock.Clock) (cache.Cache, func()) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(cfg.CacheTTL, c), func() {}
	}
	rc := cache.NewRedis(cache.NewRedisClient(cfg.RedisAddr, "", 0), cfg.CacheTTL, "")
	return rc, func() { _ = rc.Close() }
}

func newCoveSource(cfg config.Config, logger *log.Logger) (reservation.Source, func(), error) {
	store, closeCache := newCacheFor(cfg, clock.NewSystem())
	client := cove.New(cove.Options{
		URL:         cfg.ReservationsURL(),
		Timeout:     cfg.APITimeout,
		MaxAttempts: cfg.MaxRetryAttempts,
		RetryDelay:  cfg.RetryDelay,
		Cache:       store,
		Location:    cfg.Location,
		Strict:      cfg.StrictValidation,
		Logger:      logger,
	})
	return client, closeCache, nil
}
