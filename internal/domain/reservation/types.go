package reservation

import (
	"errors"
	"sort"
	"time"
)

// Room is the room descriptor embedded in every reservation. Equality is by ID.
type Room struct {
	ID       string
	Name     string
	ImageURL string
}

// Reservation occupies its room over the half-open span [Start, End).
type Reservation struct {
	ID    string
	Start time.Time
	End   time.Time
	Room  Room
}

var (
	ErrEmptyID        = errors.New("reservation id is empty")
	ErrMissingRoom    = errors.New("reservation room id is empty")
	ErrEndBeforeStart = errors.New("reservation ends before it starts")
)

// Overlaps reports whether the two spans share at least one instant.
// Touching spans (r.End == o.Start) do not overlap.
func (r Reservation) Overlaps(o Reservation) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

func (r Reservation) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Validate checks the invariants callers must hold before handing a
// reservation to the query functions. The query functions never call it.
func (r Reservation) Validate() error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if r.Room.ID == "" {
		return ErrMissingRoom
	}
	if r.End.Before(r.Start) {
		return ErrEndBeforeStart
	}
	return nil
}

// sortedByStart returns a start-ascending copy; equal starts keep input order.
func sortedByStart(rs []Reservation) []Reservation {
	out := make([]Reservation, len(rs))
	copy(out, rs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
