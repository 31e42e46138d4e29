package usecases

import (
	"context"
	"fmt"

	"github.com/example/room-schedule/internal/domain/reservation"
)

type PingSource struct {
	Source reservation.Source
}

func (u PingSource) Execute(ctx context.Context) error {
	if u.Source == nil {
		return fmt.Errorf("source is nil")
	}
	return u.Source.Ping(ctx)
}
