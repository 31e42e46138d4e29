package reservation

import "time"

var (
	roomA = Room{ID: "room1", Name: "Room A"}
	roomB = Room{ID: "room2", Name: "Room B", ImageURL: "https://example.com/b.png"}
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func res(id string, start, end time.Time, room Room) Reservation {
	return Reservation{ID: id, Start: start, End: end, Room: room}
}

func ids(rs []Reservation) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
