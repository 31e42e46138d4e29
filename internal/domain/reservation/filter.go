package reservation

import "time"

// Criteria narrows a reservation collection. A zero Date imposes no date
// constraint; an empty RoomIDs imposes no room constraint (it never means
// "match nothing"). Empty strings inside RoomIDs are ignored.
type Criteria struct {
	Date    time.Time
	RoomIDs []string
}

func (c Criteria) roomSet() map[string]struct{} {
	var set map[string]struct{}
	for _, id := range c.RoomIDs {
		if id == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(c.RoomIDs))
		}
		set[id] = struct{}{}
	}
	return set
}

// IsZero reports whether the criteria constrain nothing.
func (c Criteria) IsZero() bool {
	return c.Date.IsZero() && len(c.roomSet()) == 0
}

// SameDay reports whether a and b fall on the same calendar day in loc.
// A nil loc means UTC.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// Filter keeps the reservations that satisfy every present criterion, in
// input order. Day matching compares Start against c.Date in loc (nil → UTC).
// With no constraint at all the input slice itself is returned.
func Filter(rs []Reservation, c Criteria, loc *time.Location) []Reservation {
	if c.IsZero() {
		return rs
	}
	rooms := c.roomSet()

	out := make([]Reservation, 0, len(rs))
	for _, r := range rs {
		if !c.Date.IsZero() && !SameDay(r.Start, c.Date, loc) {
			continue
		}
		if rooms != nil {
			if _, ok := rooms[r.Room.ID]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
