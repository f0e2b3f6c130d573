package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/people", func(r chi.Router) {
			r.Get("/", s.handleListPeople)
			r.Post("/", s.handleCreatePerson)
			r.Delete("/", s.handleDeletePersonQuery)
			r.Get("/{id}", s.handleGetPerson)
			r.Patch("/{id}", s.handleUpdatePerson)
			r.Delete("/{id}", s.handleDeletePerson)
		})
		r.Get("/relationships", s.handleListRelationships)
		r.Post("/relationships", s.handleCreateRelationship)

		r.Get("/layout", s.handleLayout)
		r.Get("/tree.svg", s.handleTreeSVG)
		r.Get("/tree.dot", s.handleTreeDOT)
	})
	return r
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
