package web

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/room-schedule/internal/application/usecases"
	"github.com/example/room-schedule/internal/clock"
	"github.com/example/room-schedule/internal/domain/reservation"
	"github.com/example/room-schedule/internal/infrastructure/cove"
)

type fakeSource struct {
	mu     sync.Mutex
	rs     []reservation.Reservation
	err    error
	forced []bool
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Ping(context.Context) error { return f.err }

func (f *fakeSource) Fetch(_ context.Context, force bool) ([]reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forced = append(f.forced, force)
	if f.err != nil {
		return nil, f.err
	}
	return f.rs, nil
}

var (
	roomA = reservation.Room{ID: "a", Name: "Alpha", ImageURL: "https://img.example/a.png"}
	roomB = reservation.Room{ID: "b", Name: "Beta"}
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 1, day, hour, minute, 0, 0, time.UTC)
}

func snapshot() []reservation.Reservation {
	return []reservation.Reservation{
		{ID: "1", Start: at(1, 10, 0), End: at(1, 12, 0), Room: roomA},
		{ID: "2", Start: at(1, 9, 0), End: at(1, 11, 0), Room: roomA},
		{ID: "3", Start: at(1, 13, 0), End: at(1, 13, 45), Room: roomB},
		{ID: "4", Start: at(2, 9, 0), End: at(2, 10, 0), Room: roomB},
	}
}

func newTestServer(t *testing.T, src *fakeSource, prefs *PrefsStore) (*Server, *bytes.Buffer) {
	t.Helper()
	tmpl, err := ParseTemplates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	var buf bytes.Buffer
	return &Server{
		Schedule:  usecases.BrowseSchedule{Source: src, Location: time.UTC},
		Templates: tmpl,
		Prefs:     prefs,
		Location:  time.UTC,
		Clock:     clock.NewFixed(at(1, 8, 0)),
		Logger:    log.New(&buf, "", 0),
	}, &buf
}

func getJSON(t *testing.T, h http.Handler, target string, v any) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	if v != nil {
		if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
			t.Fatalf("decode %s: %v (body=%s)", target, err, rr.Body.String())
		}
	}
	return rr
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, &fakeSource{}, nil)
	rr := httptest.NewRecorder()
	s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestAPIReservations(t *testing.T) {
	t.Parallel()

	t.Run("defaults to today", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, &fakeSource{rs: snapshot()}, nil)
		var got scheduleJSON
		rr := getJSON(t, s.Routes(), "/api/reservations", &got)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if got.Date == nil || *got.Date != "2024-01-01" {
			t.Fatalf("expected date 2024-01-01, got %v", got.Date)
		}
		if got.Fetched != 4 || got.Shown != 3 {
			t.Fatalf("expected fetched 4 shown 3, got %d and %d", got.Fetched, got.Shown)
		}
		if len(got.Groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(got.Groups))
		}
		a := got.Groups[0]
		if a.Room.ID != "a" || !a.Conflict {
			t.Fatalf("expected room a with conflict first, got %+v", a)
		}
		if a.Reservations[0].ID != "2" || a.Reservations[1].ID != "1" {
			t.Fatalf("expected reservations sorted by start, got %+v", a.Reservations)
		}
		if got.Groups[1].Conflict {
			t.Fatalf("expected room b without conflict")
		}
		if got.Groups[1].Reservations[0].DurationMinutes != 45 {
			t.Fatalf("expected 45 minutes, got %d", got.Groups[1].Reservations[0].DurationMinutes)
		}
	})

	t.Run("all dates and room filter", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, &fakeSource{rs: snapshot()}, nil)
		var got scheduleJSON
		getJSON(t, s.Routes(), "/api/reservations?date=all&room=b", &got)
		if got.Date != nil {
			t.Fatalf("expected null date, got %q", *got.Date)
		}
		if len(got.Groups) != 1 || len(got.Groups[0].Reservations) != 2 {
			t.Fatalf("expected one group with two reservations, got %+v", got.Groups)
		}
		if len(got.Rooms) != 2 {
			t.Fatalf("expected room options from the full snapshot, got %d", len(got.Rooms))
		}
		if len(got.RoomIDs) != 1 || got.RoomIDs[0] != "b" {
			t.Fatalf("expected roomIds [b], got %v", got.RoomIDs)
		}
	})

	t.Run("refresh forces fetch", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{rs: snapshot()}
		s, _ := newTestServer(t, src, nil)
		getJSON(t, s.Routes(), "/api/reservations?refresh=1", nil)
		if len(src.forced) != 1 || !src.forced[0] {
			t.Fatalf("expected forced fetch, got %v", src.forced)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, &fakeSource{rs: snapshot()}, nil)
		var got errorResponse
		rr := getJSON(t, s.Routes(), "/api/reservations?date=01/02/2024", &got)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if got.Code != codeInvalidDate {
			t.Fatalf("expected code %q, got %q", codeInvalidDate, got.Code)
		}
	})

	t.Run("source failure", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{err: &cove.APIError{
			Message: "HTTP 503: Service Unavailable",
			Status:  http.StatusInternalServerError,
			Code:    cove.CodeFetchFailed,
			Kind:    cove.KindExhausted,
		}}
		s, _ := newTestServer(t, src, nil)
		var got errorResponse
		rr := getJSON(t, s.Routes(), "/api/reservations", &got)
		if rr.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rr.Code)
		}
		if got.Code != cove.CodeFetchFailed || got.Error != "HTTP 503: Service Unavailable" {
			t.Fatalf("unexpected error body %+v", got)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, &fakeSource{}, nil)
		rr := httptest.NewRecorder()
		s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/reservations", nil))
		if rr.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rr.Code)
		}
	})
}

func TestAPIRooms(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, &fakeSource{rs: snapshot()}, nil)
	var got []roomJSON
	getJSON(t, s.Routes(), "/api/rooms", &got)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("expected rooms [a b], got %+v", got)
	}
	if got[0].ImageURL != roomA.ImageURL {
		t.Fatalf("expected image url %q, got %q", roomA.ImageURL, got[0].ImageURL)
	}
}

func TestHome(t *testing.T) {
	t.Parallel()

	t.Run("renders grouped rooms", func(t *testing.T) {
		t.Parallel()
		s, logs := newTestServer(t, &fakeSource{rs: snapshot()}, nil)
		rr := httptest.NewRecorder()
		s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?date=2024-01-01", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		body := rr.Body.String()
		for _, want := range []string{"Alpha", "Beta", "9:00 AM", "1:45 PM", "overlapping bookings", "All Rooms"} {
			if !strings.Contains(body, want) {
				t.Fatalf("expected body to contain %q", want)
			}
		}
		if !strings.Contains(logs.String(), "path=/ status=200") {
			t.Fatalf("expected request log line, got %q", logs.String())
		}
	})

	t.Run("empty state", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, &fakeSource{rs: snapshot()}, nil)
		rr := httptest.NewRecorder()
		s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?date=2024-02-01", nil))
		if !strings.Contains(rr.Body.String(), "No reservations found.") {
			t.Fatalf("expected empty state")
		}
	})

	t.Run("error state", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{err: &cove.APIError{Message: "Network Error", Code: cove.CodeFetchFailed, Kind: cove.KindExhausted}}
		s, _ := newTestServer(t, src, nil)
		rr := httptest.NewRecorder()
		s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		body := rr.Body.String()
		if !strings.Contains(body, "Error Loading Reservations") || !strings.Contains(body, "Network Error") {
			t.Fatalf("expected error state, got %s", body)
		}
	})

	t.Run("invalid date flashes", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, &fakeSource{rs: snapshot()}, nil)
		rr := httptest.NewRecorder()
		s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?date=nope", nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "invalid date") {
			t.Fatalf("expected flash message")
		}
	})

	t.Run("unknown path", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestServer(t, &fakeSource{}, nil)
		rr := httptest.NewRecorder()
		s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})
}

func TestHome_RemembersFilters(t *testing.T) {
	t.Parallel()

	prefs := NewPrefsStore([]byte("0123456789abcdef0123456789abcdef"), []byte("0123456789abcdef"))
	s, _ := newTestServer(t, &fakeSource{rs: snapshot()}, prefs)
	h := s.Routes()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?date=2024-01-02&room=b", nil))
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != prefsCookieName {
		t.Fatalf("expected prefs cookie, got %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reservations", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var got scheduleJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Date == nil || *got.Date != "2024-01-02" {
		t.Fatalf("expected remembered date, got %v", got.Date)
	}
	if len(got.Groups) != 1 || got.Groups[0].Reservations[0].ID != "4" {
		t.Fatalf("expected reservation 4 only, got %+v", got.Groups)
	}
}

func TestHome_TodayIsNotPinned(t *testing.T) {
	t.Parallel()

	prefs := NewPrefsStore([]byte("0123456789abcdef0123456789abcdef"), nil)
	s, _ := newTestServer(t, &fakeSource{rs: snapshot()}, prefs)

	// The form submits today's date as shown in the date picker.
	rr := httptest.NewRecorder()
	s.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?date=2024-01-01&room=a", nil))
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected prefs cookie, got %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	got, ok := prefs.Load(req)
	if !ok {
		t.Fatalf("expected prefs to load")
	}
	if got.Date != "" {
		t.Fatalf("expected today to be stored as empty date, got %q", got.Date)
	}

	// A day later the remembered filter follows the new day.
	s.Clock = clock.NewFixed(at(2, 8, 0))
	rr = httptest.NewRecorder()
	apiReq := httptest.NewRequest(http.MethodGet, "/api/reservations", nil)
	apiReq.AddCookie(cookies[0])
	s.Routes().ServeHTTP(rr, apiReq)
	var body scheduleJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Date == nil || *body.Date != "2024-01-02" {
		t.Fatalf("expected 2024-01-02, got %v", body.Date)
	}
	if len(body.RoomIDs) != 1 || body.RoomIDs[0] != "a" {
		t.Fatalf("expected remembered room a, got %v", body.RoomIDs)
	}
}
