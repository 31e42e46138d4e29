package refresher

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/example/room-schedule/internal/domain/reservation"
)

// Refresher keeps the source's cache warm by force-fetching on a ticker.
// Failures are logged and the loop keeps going.
type Refresher struct {
	Source   reservation.Source
	Interval time.Duration
	Logger   *log.Logger
}

func (r *Refresher) Run(ctx context.Context) error {
	if r.Interval <= 0 {
		return errors.New("refresher: interval must be positive")
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	t := time.NewTicker(r.Interval)
	defer t.Stop()

	// kick immediately
	r.tick(ctx, logger)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			r.tick(ctx, logger)
		}
	}
}

func (r *Refresher) tick(ctx context.Context, logger *log.Logger) {
	start := time.Now()
	rs, err := r.Source.Fetch(ctx, true)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Printf("refresher: source=%s refresh failed: %v", r.Source.Name(), err)
		return
	}
	logger.Printf("refresher: source=%s reservations=%d duration=%s", r.Source.Name(), len(rs), time.Since(start))
}
