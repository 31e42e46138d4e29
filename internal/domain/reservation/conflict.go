package reservation

// HasConflict reports whether any two reservations overlap.
//
// The input is not required to be sorted or restricted to one room. After a
// stable sort by start, checking each reservation against its immediate
// successor is enough: if current ends at or before next starts, every later
// reservation starts no earlier than next and cannot overlap current either.
// Reservations that merely touch do not conflict.
func HasConflict(rs []Reservation) bool {
	if len(rs) <= 1 {
		return false
	}
	sorted := sortedByStart(rs)
	for i := 0; i < len(sorted)-1; i++ {
		current, next := sorted[i], sorted[i+1]
		if current.End.After(next.Start) {
			return true
		}
	}
	return false
}

// ConflictsByRoom runs HasConflict over each group.
func ConflictsByRoom(groups Groups) map[string]bool {
	out := make(map[string]bool, len(groups))
	for _, g := range groups {
		out[g.Room.ID] = HasConflict(g.Reservations)
	}
	return out
}

// Pair is two reservations whose spans overlap, First starting no later
// than Second.
type Pair struct {
	First  Reservation
	Second Reservation
}

// OverlappingPairs lists every overlapping pair in start order. Unlike
// HasConflict it compares all pairs, so an empty span never overlaps anything.
func OverlappingPairs(rs []Reservation) []Pair {
	sorted := sortedByStart(rs)
	var out []Pair
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if !sorted[j].Start.Before(sorted[i].End) {
				break
			}
			if sorted[i].Overlaps(sorted[j]) {
				out = append(out, Pair{First: sorted[i], Second: sorted[j]})
			}
		}
	}
	return out
}
