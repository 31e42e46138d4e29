package cove

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/example/room-schedule/internal/domain/reservation"
)

type apiRoom struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

type apiReservation struct {
	ID    string  `json:"id" validate:"required"`
	Start string  `json:"start" validate:"required"`
	End   string  `json:"end" validate:"required"`
	Room  apiRoom `json:"room"`
}

var validate = validator.New()

// Layouts accepted for ISO-8601 timestamps. Layouts without an offset are
// read in the canonical zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

func (a apiReservation) toDomain(loc *time.Location) (reservation.Reservation, error) {
	if err := validate.Struct(a); err != nil {
		return reservation.Reservation{}, err
	}
	start, err := parseTimestamp(a.Start, loc)
	if err != nil {
		return reservation.Reservation{}, err
	}
	end, err := parseTimestamp(a.End, loc)
	if err != nil {
		return reservation.Reservation{}, err
	}
	r := reservation.Reservation{
		ID:    a.ID,
		Start: start,
		End:   end,
		Room: reservation.Room{
			ID:       a.Room.ID,
			Name:     a.Room.Name,
			ImageURL: a.Room.ImageURL,
		},
	}
	if err := r.Validate(); err != nil {
		return reservation.Reservation{}, err
	}
	return r, nil
}

// decodeReservations turns a response body into domain values. In strict
// mode the first malformed record fails the whole snapshot; otherwise
// malformed records are logged and skipped.
func decodeReservations(body []byte, loc *time.Location, strict bool, logger *log.Logger) ([]reservation.Reservation, error) {
	var raw []apiReservation
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse reservations: %w", err)
	}

	out := make([]reservation.Reservation, 0, len(raw))
	for i, a := range raw {
		r, err := a.toDomain(loc)
		if err != nil {
			if strict {
				return nil, &APIError{
					Message: fmt.Sprintf("invalid reservation at index %d (id=%q): %v", i, a.ID, err),
					Code:    CodeInvalidReservation,
					Kind:    KindClient,
					Err:     err,
				}
			}
			logger.Printf("cove: skipping reservation index=%d id=%q err=%v", i, a.ID, err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
