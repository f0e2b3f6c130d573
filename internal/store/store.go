// Package store defines the persistence interface for people and
// relationships.
//
// Implementations return coded errors from pkg/errors: NOT_FOUND for
// unknown ids, INVALID_INPUT for rows that fail validation,
// CONSTRAINT_VIOLATION for relationships naming unknown people and
// STORE_UNAVAILABLE when the backend cannot be reached. Callers surface
// these errors and do not retry.
package store

import (
	"context"

	"github.com/matzehuels/familytree/pkg/family"
)

// Store persists a single family tree.
type Store interface {
	// ListPeople returns every person ordered by id.
	ListPeople(ctx context.Context) ([]family.Person, error)
	GetPerson(ctx context.Context, id int64) (family.Person, error)
	// CreatePerson validates p, assigns its id and timestamps and stores it.
	CreatePerson(ctx context.Context, p *family.Person) error
	// UpdatePerson replaces the stored fields of p.ID and refreshes
	// UpdatedAt. CreatedAt is preserved.
	UpdatePerson(ctx context.Context, p *family.Person) error
	// DeletePerson removes a person and every relationship naming them.
	DeletePerson(ctx context.Context, id int64) error

	// ListRelationships returns every relationship ordered by id.
	ListRelationships(ctx context.Context) ([]family.Relationship, error)
	// CreateRelationship validates r, checks both endpoints exist and
	// stores it.
	CreateRelationship(ctx context.Context, r *family.Relationship) error

	// Reset removes all people and relationships and restarts id
	// sequences.
	Reset(ctx context.Context) error
	Close() error
}
