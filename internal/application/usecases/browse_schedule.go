package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/example/room-schedule/internal/domain/reservation"
)

type ScheduleQuery struct {
	Criteria     reservation.Criteria
	ForceRefresh bool
}

// Schedule is what the presentation layer renders for one query.
type Schedule struct {
	// Rooms lists every room in the snapshot, before filtering, for selectors.
	Rooms []reservation.Room
	// Groups holds the filtered reservations per room.
	Groups reservation.Groups
	// Conflicts flags rooms whose filtered reservations overlap.
	Conflicts map[string]bool
	Criteria  reservation.Criteria
	Fetched   int
}

func (s Schedule) HasConflicts() bool {
	for _, c := range s.Conflicts {
		if c {
			return true
		}
	}
	return false
}

// BrowseSchedule fetches a snapshot and runs the query pipeline over it:
// room options, filter, grouping, per-room conflicts.
type BrowseSchedule struct {
	Source   reservation.Source
	Location *time.Location
}

func (u BrowseSchedule) Execute(ctx context.Context, q ScheduleQuery) (Schedule, error) {
	if u.Source == nil {
		return Schedule{}, fmt.Errorf("source is nil")
	}
	all, err := u.Source.Fetch(ctx, q.ForceRefresh)
	if err != nil {
		return Schedule{}, err
	}

	filtered := reservation.Filter(all, q.Criteria, u.Location)
	groups := reservation.GroupByRoom(filtered)
	return Schedule{
		Rooms:     reservation.UniqueRooms(all),
		Groups:    groups,
		Conflicts: reservation.ConflictsByRoom(groups),
		Criteria:  q.Criteria,
		Fetched:   len(all),
	}, nil
}
