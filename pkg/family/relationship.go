package family

import (
	"time"

	"github.com/matzehuels/familytree/pkg/errors"
)

// RelationType is the kind of a relationship row.
type RelationType string

const (
	RelationParent RelationType = "parent"
	RelationSpouse RelationType = "spouse"
	RelationChild  RelationType = "child"
)

// Valid reports whether t is a known relation type.
func (t RelationType) Valid() bool {
	return t == RelationParent || t == RelationSpouse || t == RelationChild
}

// IsHierarchy reports whether t defines generation order. Both "parent" and
// "child" rows are oriented parent → child.
func (t RelationType) IsHierarchy() bool {
	return t == RelationParent || t == RelationChild
}

// Relationship is a typed edge from PersonID to RelatedPersonID.
type Relationship struct {
	ID              int64        `json:"id,omitempty"`
	PersonID        int64        `json:"personId"`
	RelatedPersonID int64        `json:"relatedPersonId"`
	Type            RelationType `json:"relationType"`
	CreatedAt       time.Time    `json:"createdAt,omitzero"`
}

// Validate checks that the relationship has a known type and two distinct
// endpoints. It does not check that the endpoints exist.
func (r *Relationship) Validate() error {
	if !r.Type.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid relation type: %q", r.Type)
	}
	if r.PersonID == 0 || r.RelatedPersonID == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "personId and relatedPersonId are required")
	}
	if r.PersonID == r.RelatedPersonID {
		return errors.New(errors.ErrCodeInvalidInput, "a person cannot be related to themselves")
	}
	return nil
}

// Parent returns the parent side of a hierarchy edge.
func (r Relationship) Parent() int64 { return r.PersonID }

// Child returns the child side of a hierarchy edge.
func (r Relationship) Child() int64 { return r.RelatedPersonID }
