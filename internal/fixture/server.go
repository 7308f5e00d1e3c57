// Package fixture serves a bundled sample catalog over the content-source
// API so the client can be exercised without the real backend.
package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/naveenspark/catalyst/pkg/domain"
)

//go:embed programs.json
var programsJSON []byte

// Programs decodes the bundled sample catalog.
func Programs() ([]domain.ProgramDetail, error) {
	var programs []domain.ProgramDetail
	if err := json.Unmarshal(programsJSON, &programs); err != nil {
		return nil, fmt.Errorf("fixture.Programs: %w", err)
	}
	return programs, nil
}

// Server answers the two read endpoints from an in-memory catalog.
type Server struct {
	programs []domain.ProgramDetail
	byID     map[string]int
	logger   zerolog.Logger
}

// New creates a Server over programs, kept in the given order.
func New(programs []domain.ProgramDetail, logger zerolog.Logger) *Server {
	byID := make(map[string]int, len(programs))
	for i, p := range programs {
		byID[p.ID] = i
	}
	return &Server{programs: programs, byID: byID, logger: logger}
}

// Handler returns the chi router for the content-source API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Route("/api/collections/programs", func(r chi.Router) {
		r.Get("/", s.listPrograms)
		r.Get("/{id}", s.getProgram)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	return r
}

func (s *Server) listPrograms(w http.ResponseWriter, _ *http.Request) {
	list := domain.ProgramList{Data: make([]domain.ProgramSummary, 0, len(s.programs))}
	for _, p := range s.programs {
		list.Data = append(list.Data, p.ProgramSummary)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getProgram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	i, ok := s.byID[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found"})
		return
	}
	p := s.programs[i]
	// The widget relation is only expanded on request.
	if r.URL.Query().Get("relations") != "widget" {
		p.Widget = nil
	}
	writeJSON(w, http.StatusOK, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort write
}

// requestLogger logs each request with method, path, status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("fixture request")
	})
}
