package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/example/room-schedule/internal/domain/reservation"
)

const allDates = "all"

// scheduleRequest is a parsed schedule query. URL parameters win over the
// remembered preferences; with neither, the date defaults to today.
type scheduleRequest struct {
	criteria reservation.Criteria
	// date is the selected day as YYYY-MM-DD, or "" for all dates.
	date     string
	today    string
	rooms    []string
	force    bool
	explicit bool
}

// prefs is what to remember for later visits. Today is stored as "" so
// the page keeps following the current day.
func (req scheduleRequest) prefs() Prefs {
	d := req.date
	switch d {
	case "":
		d = allDates
	case req.today:
		d = ""
	}
	return Prefs{Date: d, Rooms: req.rooms}
}

func parseScheduleRequest(r *http.Request, prefs Prefs, now time.Time, loc *time.Location) (scheduleRequest, error) {
	q := r.URL.Query()
	out := scheduleRequest{
		force: q.Get("refresh") == "1",
		today: reservation.StartOfDay(now, loc).Format(reservation.DayLayout),
	}

	dateStr := prefs.Date
	if v, ok := q["date"]; ok {
		dateStr = strings.TrimSpace(v[0])
		out.explicit = true
	}
	switch dateStr {
	case "":
		out.criteria.Date = reservation.StartOfDay(now, loc)
	case allDates:
	default:
		d, err := reservation.ParseDay(dateStr, loc)
		if err != nil {
			return scheduleRequest{}, err
		}
		out.criteria.Date = d
	}
	if !out.criteria.Date.IsZero() {
		out.date = out.criteria.Date.Format(reservation.DayLayout)
	}

	rooms := prefs.Rooms
	if v, ok := q["room"]; ok {
		rooms = v
		out.explicit = true
	}
	for _, id := range rooms {
		id = strings.TrimSpace(id)
		if id != "" {
			out.rooms = append(out.rooms, id)
		}
	}
	out.criteria.RoomIDs = out.rooms
	return out, nil
}
