package server

import (
	"net/http"

	"github.com/matzehuels/familytree/internal/events"
	"github.com/matzehuels/familytree/pkg/family"
)

// handleListRelationships handles GET /api/relationships.
func (s *Server) handleListRelationships(w http.ResponseWriter, r *http.Request) {
	rels, err := s.store.ListRelationships(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rels == nil {
		rels = []family.Relationship{}
	}
	writeJSON(w, http.StatusOK, rels)
}

// handleCreateRelationship handles POST /api/relationships.
func (s *Server) handleCreateRelationship(w http.ResponseWriter, r *http.Request) {
	var rel family.Relationship
	if err := decodeJSON(r, &rel); err != nil {
		writeError(w, r, err)
		return
	}
	rel.ID = 0
	if err := s.store.CreateRelationship(r.Context(), &rel); err != nil {
		writeError(w, r, err)
		return
	}
	s.publish(r.Context(), events.TopicRelationshipCreated, events.RelationshipCreated{Relationship: rel})
	writeJSON(w, http.StatusCreated, rel)
}
