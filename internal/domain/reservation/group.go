package reservation

// Group is one room's reservations, sorted ascending by start.
type Group struct {
	Room         Room
	Reservations []Reservation
}

// Groups is the grouped result. Groups appear in the order their room id was
// first encountered; use Get for lookups by room id.
type Groups []Group

// GroupByRoom partitions rs by room id. Each group's Room is the one carried
// by the first reservation seen for that id. Within a group reservations are
// stably sorted by start. The input is not modified.
func GroupByRoom(rs []Reservation) Groups {
	if len(rs) == 0 {
		return Groups{}
	}

	index := make(map[string]int)
	var groups Groups
	for _, r := range rs {
		i, ok := index[r.Room.ID]
		if !ok {
			i = len(groups)
			index[r.Room.ID] = i
			groups = append(groups, Group{Room: r.Room})
		}
		groups[i].Reservations = append(groups[i].Reservations, r)
	}

	for i := range groups {
		groups[i].Reservations = sortedByStart(groups[i].Reservations)
	}
	return groups
}

func (g Groups) Get(roomID string) ([]Reservation, bool) {
	for _, grp := range g {
		if grp.Room.ID == roomID {
			return grp.Reservations, true
		}
	}
	return nil, false
}

func (g Groups) RoomIDs() []string {
	out := make([]string, 0, len(g))
	for _, grp := range g {
		out = append(out, grp.Room.ID)
	}
	return out
}

// Total counts reservations across all groups.
func (g Groups) Total() int {
	n := 0
	for _, grp := range g {
		n += len(grp.Reservations)
	}
	return n
}
