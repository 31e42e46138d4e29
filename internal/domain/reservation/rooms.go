package reservation

// UniqueRooms returns one Room per distinct room id in first-encounter order.
// The first Room seen for an id wins; later copies are ignored even when
// their name or image differ.
func UniqueRooms(rs []Reservation) []Room {
	seen := make(map[string]struct{}, len(rs))
	out := make([]Room, 0)
	for _, r := range rs {
		if _, ok := seen[r.Room.ID]; ok {
			continue
		}
		seen[r.Room.ID] = struct{}{}
		out = append(out, r.Room)
	}
	return out
}
