// Package server exposes a loaded snapshot to the display shell as a
// read-only JSON API. The snapshot is loaded once by the caller and
// passed in; there is no ambient cache and no write path.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arnoldlayne0/mapisse/snapshot"
	"github.com/arnoldlayne0/mapisse/view"
)

// Server serves filtered views of one snapshot.
type Server struct {
	snap   *snapshot.Snapshot
	logger *slog.Logger
}

// New creates a Server. A nil logger falls back to slog.Default().
func New(snap *snapshot.Snapshot, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{snap: snap, logger: logger}
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/view", s.handleView)
		r.Get("/artists", s.handleArtists)
		r.Get("/museums", s.handleMuseums)
		r.Get("/summary", s.handleSummary)
	})
	return r
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := view.Query(s.snap, view.Filter{
		Artist: q.Get("artist"),
		Museum: q.Get("museum"),
	})
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleArtists(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"artists": s.snap.Painters()})
}

func (s *Server) handleMuseums(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"museums": s.snap.Museums()})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"paintings":   len(s.snap.Records),
		"painters":    len(s.snap.Painters()),
		"museums":     len(s.snap.Museums()),
		"with_coords": s.snap.WithCoords(),
		"fetched_at":  s.snap.FetchedAt.Format(time.RFC3339),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("server: encode response", "error", err)
	}
}
