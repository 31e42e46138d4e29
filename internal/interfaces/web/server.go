package web

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/example/room-schedule/internal/application/usecases"
	"github.com/example/room-schedule/internal/clock"
	"github.com/example/room-schedule/internal/infrastructure/cove"
)

type Server struct {
	Schedule  usecases.BrowseSchedule
	Templates *template.Template

	// Prefs may be nil, in which case filters are not remembered.
	Prefs    *PrefsStore
	Location *time.Location
	Clock    clock.Clock
	Logger   *log.Logger
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("/api/reservations", s.handleAPIReservations)
	mux.HandleFunc("/api/rooms", s.handleAPIRooms)
	mux.HandleFunc("/", s.handleHome)

	return RequestLogger(mux, s.logger())
}

func (s *Server) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *Server) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *Server) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

func (s *Server) parse(r *http.Request) (scheduleRequest, error) {
	prefs, _ := s.Prefs.Load(r)
	return parseScheduleRequest(r, prefs, s.now(), s.loc())
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.parse(r)
	if err != nil {
		data := newPageData(s.loc(), scheduleRequest{})
		data.Flash = err.Error()
		s.render(w, http.StatusBadRequest, data)
		return
	}
	if req.explicit {
		if err := s.Prefs.Save(w, r, req.prefs()); err != nil {
			s.logger().Printf("web: save filter prefs: %v", err)
		}
	}

	data := newPageData(s.loc(), req)
	sched, err := s.Schedule.Execute(r.Context(), usecases.ScheduleQuery{Criteria: req.criteria, ForceRefresh: req.force})
	if err != nil {
		s.logger().Printf("web: load schedule request_id=%s err=%v", RequestIDFromContext(r.Context()), err)
		data.Error = cove.DisplayMessage(err)
		s.render(w, http.StatusOK, data)
		return
	}
	data.fill(sched, s.loc(), req)
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleAPIReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	req, err := s.parse(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidDate, err.Error())
		return
	}
	sched, err := s.Schedule.Execute(r.Context(), usecases.ScheduleQuery{Criteria: req.criteria, ForceRefresh: req.force})
	if err != nil {
		s.logger().Printf("web: load schedule request_id=%s err=%v", RequestIDFromContext(r.Context()), err)
		writeSourceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleJSON(sched, s.loc(), req))
}

func (s *Server) handleAPIRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	sched, err := s.Schedule.Execute(r.Context(), usecases.ScheduleQuery{ForceRefresh: r.URL.Query().Get("refresh") == "1"})
	if err != nil {
		writeSourceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roomsJSON(sched.Rooms))
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	if s.Templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.Templates.ExecuteTemplate(w, "schedule.html", data); err != nil {
		s.logger().Printf("web: render: %v", err)
	}
}

// Start serves h on addr until ctx ends, then shuts down gracefully.
func Start(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logger.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
