package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/room-schedule/internal/application/usecases"
	"github.com/example/room-schedule/internal/domain/reservation"
	"github.com/example/room-schedule/internal/infrastructure/config"
)

type scheduleFlags struct {
	date     string
	allDates bool
	rooms    []string
	refresh  bool
}

func (f *scheduleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "day to show as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&f.allDates, "all-dates", false, "do not filter by date")
	cmd.Flags().StringSliceVar(&f.rooms, "room", nil, "room id to include (repeatable or comma separated)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass the response cache")
	cmd.MarkFlagsMutuallyExclusive("date", "all-dates")
}

func (f *scheduleFlags) query(a *app, cfg config.Config) (usecases.ScheduleQuery, error) {
	q := usecases.ScheduleQuery{ForceRefresh: f.refresh}
	switch {
	case f.allDates:
	case strings.TrimSpace(f.date) == "":
		q.Criteria.Date = reservation.StartOfDay(a.clock.Now(), cfg.Location)
	default:
		d, err := reservation.ParseDay(strings.TrimSpace(f.date), cfg.Location)
		if err != nil {
			return q, err
		}
		q.Criteria.Date = d
	}
	for _, id := range f.rooms {
		if id = strings.TrimSpace(id); id != "" {
			q.Criteria.RoomIDs = append(q.Criteria.RoomIDs, id)
		}
	}
	return q, nil
}

// loadSchedule runs one schedule query end to end.
func loadSchedule(cmd *cobra.Command, a *app, f *scheduleFlags) (usecases.Schedule, config.Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return usecases.Schedule{}, cfg, err
	}
	q, err := f.query(a, cfg)
	if err != nil {
		return usecases.Schedule{}, cfg, err
	}
	src, closeSrc, err := a.newSource(cfg, a.logger)
	if err != nil {
		return usecases.Schedule{}, cfg, err
	}
	defer closeSrc()

	uc := usecases.BrowseSchedule{Source: src, Location: cfg.Location}
	s, err := uc.Execute(cmd.Context(), q)
	return s, cfg, err
}

var errConflicts = errors.New("overlapping reservations found")
