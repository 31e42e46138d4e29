package web

import (
	"math"
	"time"

	"github.com/example/room-schedule/internal/application/usecases"
	"github.com/example/room-schedule/internal/domain/reservation"
)

const displayTimeLayout = "3:04 PM"

type roomOption struct {
	Value    string
	Name     string
	Selected bool
}

type itemView struct {
	ID      string
	Start   string
	End     string
	Minutes int
}

type roomView struct {
	Name     string
	ImageURL string
	Conflict bool
	Items    []itemView
}

type pageData struct {
	Title       string
	Zone        string
	Date        string
	AllRooms    bool
	SelectSize  int
	RoomOptions []roomOption
	Rooms       []roomView
	Flash       string
	Error       string
}

func durationMinutes(r reservation.Reservation) int {
	return int(math.Round(r.Duration().Minutes()))
}

func newPageData(loc *time.Location, req scheduleRequest) pageData {
	return pageData{
		Title:      "Reservations",
		Zone:       loc.String(),
		Date:       req.date,
		AllRooms:   len(req.rooms) == 0,
		SelectSize: 1,
	}
}

func (p *pageData) fill(s usecases.Schedule, loc *time.Location, req scheduleRequest) {
	selected := make(map[string]bool, len(req.rooms))
	for _, id := range req.rooms {
		selected[id] = true
	}
	for _, room := range s.Rooms {
		p.RoomOptions = append(p.RoomOptions, roomOption{Value: room.ID, Name: room.Name, Selected: selected[room.ID]})
	}
	p.SelectSize = len(p.RoomOptions) + 1
	if p.SelectSize > 8 {
		p.SelectSize = 8
	}

	for _, g := range s.Groups {
		rv := roomView{Name: g.Room.Name, ImageURL: g.Room.ImageURL, Conflict: s.Conflicts[g.Room.ID]}
		for _, r := range g.Reservations {
			rv.Items = append(rv.Items, itemView{
				ID:      r.ID,
				Start:   r.Start.In(loc).Format(displayTimeLayout),
				End:     r.End.In(loc).Format(displayTimeLayout),
				Minutes: durationMinutes(r),
			})
		}
		p.Rooms = append(p.Rooms, rv)
	}
}

type roomJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type reservationJSON struct {
	ID              string    `json:"id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
}

type groupJSON struct {
	Room         roomJSON          `json:"room"`
	Conflict     bool              `json:"conflict"`
	Reservations []reservationJSON `json:"reservations"`
}

type scheduleJSON struct {
	Date    *string     `json:"date"`
	RoomIDs []string    `json:"roomIds"`
	Fetched int         `json:"fetched"`
	Shown   int         `json:"shown"`
	Rooms   []roomJSON  `json:"rooms"`
	Groups  []groupJSON `json:"groups"`
}

func toRoomJSON(r reservation.Room) roomJSON {
	return roomJSON{ID: r.ID, Name: r.Name, ImageURL: r.ImageURL}
}

func roomsJSON(rooms []reservation.Room) []roomJSON {
	out := make([]roomJSON, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomJSON(r))
	}
	return out
}

func toScheduleJSON(s usecases.Schedule, loc *time.Location, req scheduleRequest) scheduleJSON {
	out := scheduleJSON{
		RoomIDs: req.rooms,
		Fetched: s.Fetched,
		Shown:   s.Groups.Total(),
		Rooms:   roomsJSON(s.Rooms),
		Groups:  make([]groupJSON, 0, len(s.Groups)),
	}
	if out.RoomIDs == nil {
		out.RoomIDs = []string{}
	}
	if req.date != "" {
		d := req.date
		out.Date = &d
	}
	for _, g := range s.Groups {
		gj := groupJSON{
			Room:         toRoomJSON(g.Room),
			Conflict:     s.Conflicts[g.Room.ID],
			Reservations: make([]reservationJSON, 0, len(g.Reservations)),
		}
		for _, r := range g.Reservations {
			gj.Reservations = append(gj.Reservations, reservationJSON{
				ID:              r.ID,
				Start:           r.Start.In(loc),
				End:             r.End.In(loc),
				DurationMinutes: durationMinutes(r),
			})
		}
		out.Groups = append(out.Groups, gj)
	}
	return out
}
