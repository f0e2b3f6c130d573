package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/familytree/internal/events"
	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
)

// handleListPeople handles GET /api/people.
func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := s.store.ListPeople(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if people == nil {
		people = []family.Person{}
	}
	writeJSON(w, http.StatusOK, people)
}

// handleGetPerson handles GET /api/people/{id}.
func (s *Server) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.store.GetPerson(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleCreatePerson handles POST /api/people.
func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var p family.Person
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = 0
	if err := s.store.CreatePerson(r.Context(), &p); err != nil {
		writeError(w, r, err)
		return
	}
	s.publish(r.Context(), events.TopicPersonCreated, events.PersonCreated{Person: p})
	writeJSON(w, http.StatusCreated, p)
}

// handleUpdatePerson handles PATCH /api/people/{id}. Fields absent from the
// body keep their stored values.
func (s *Server) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.store.GetPerson(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read body"))
		return
	}
	if err := json.Unmarshal(body, &p); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid JSON body"))
		return
	}
	p.ID = id
	if err := s.store.UpdatePerson(r.Context(), &p); err != nil {
		writeError(w, r, err)
		return
	}
	s.publish(r.Context(), events.TopicPersonUpdated, events.PersonUpdated{Person: p})
	writeJSON(w, http.StatusOK, p)
}

// handleDeletePerson handles DELETE /api/people/{id}.
func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	s.deletePerson(w, r, chi.URLParam(r, "id"))
}

// handleDeletePersonQuery handles DELETE /api/people?id=.
func (s *Server) handleDeletePersonQuery(w http.ResponseWriter, r *http.Request) {
	s.deletePerson(w, r, r.URL.Query().Get("id"))
}

func (s *Server) deletePerson(w http.ResponseWriter, r *http.Request, rawID string) {
	if rawID == "" {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "id is required"))
		return
	}
	id, err := parseID(rawID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.DeletePerson(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.publish(r.Context(), events.TopicPersonDeleted, events.PersonDeleted{PersonID: id})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
