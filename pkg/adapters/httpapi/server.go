// Package httpapi is a small tutor backend for local preview and
// end-to-end tests of the api client: an in-memory tutor store behind the
// same routes the production backend serves.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/glenrsmithjr/teach/internal/logging"
	"github.com/glenrsmithjr/teach/pkg/api"
)

// Server holds the in-memory state behind the handler.
type Server struct {
	logger *slog.Logger

	mu       sync.Mutex
	nextID   int64
	tutors   map[int64]api.Tutor
	sidebars map[string]string
}

// Option configures the server.
type Option func(*Server)

// WithLogger attaches a request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSidebar registers a sidebar fragment under a name, served at
// /sidebars/{name}.
func WithSidebar(name, markup string) Option {
	return func(s *Server) { s.sidebars[name] = markup }
}

// NewServer creates an empty backend.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:   logging.NewNop(),
		nextID:   1,
		tutors:   make(map[int64]api.Tutor),
		sidebars: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Put("/tutors/update/{id}", s.saveTutor)
	r.Get("/tutors/{id}", s.getTutor)
	r.Get("/dashboard/instructor-main", s.dashboard)
	r.Get("/sidebars/{name}", s.sidebar)
	return r
}

// Tutor returns a stored tutor by id.
func (s *Server) Tutor(id int64) (api.Tutor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tutor, ok := s.tutors[id]
	return tutor, ok
}

// saveTutor updates an existing tutor in place, or creates one when the id
// is zero or unknown. Creation answers 201 with the adopted id.
func (s *Server) saveTutor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tutor id")
		return
	}

	var tutor api.Tutor
	if err := json.NewDecoder(r.Body).Decode(&tutor); err != nil {
		writeError(w, http.StatusBadRequest, "invalid tutor payload")
		return
	}

	s.mu.Lock()
	_, exists := s.tutors[id]
	created := false
	if id == 0 || !exists {
		id = s.nextID
		s.nextID++
		created = true
	}
	tutor.ID = id
	s.tutors[id] = tutor
	s.mu.Unlock()

	s.logger.Info("tutor saved", "id", id, "created", created, "title", tutor.Title)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{"tutor": map[string]any{"id": id}})
}

func (s *Server) getTutor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tutor id")
		return
	}
	tutor, ok := s.Tutor(id)
	if !ok {
		writeError(w, http.StatusNotFound, "tutor not found")
		return
	}
	writeJSON(w, http.StatusOK, tutor)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tutors := make([]map[string]any, 0, len(s.tutors))
	for id, tutor := range s.tutors {
		tutors = append(tutors, map[string]any{
			"id":           id,
			"title":        tutor.Title,
			"subject_area": tutor.SubjectArea,
		})
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, api.Dashboard{
		Metrics:      map[string]any{"tutors": len(tutors)},
		Courses:      []map[string]any{},
		Tutors:       tutors,
		ActivityFeed: []map[string]any{},
	})
}

func (s *Server) sidebar(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	markup, ok := s.sidebars[chi.URLParam(r, "name")]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "sidebar not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(markup))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
