// Package memory implements store.Store in process memory, optionally
// persisted to a snapshot file.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/familytree/internal/store"
	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
)

// Store is a mutex-guarded in-memory store. The zero value is not usable;
// call [New].
type Store struct {
	mu      sync.RWMutex
	people  []family.Person
	rels    []family.Relationship
	nextPID int64
	nextRID int64
	now     func() time.Time
	path    string // snapshot file, empty when not persisted
}

var _ store.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{nextPID: 1, nextRID: 1, now: time.Now}
}

func (s *Store) ListPeople(_ context.Context) ([]family.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.people), nil
}

func (s *Store) GetPerson(_ context.Context, id int64) (family.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return family.Person{}, errors.New(errors.ErrCodeNotFound, "person %d not found", id)
	}
	return s.people[i], nil
}

func (s *Store) CreatePerson(_ context.Context, p *family.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	p.ID = s.nextPID
	p.CreatedAt, p.UpdatedAt = now, now
	s.nextPID++
	s.people = append(s.people, *p)
	return nil
}

func (s *Store) UpdatePerson(_ context.Context, p *family.Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(p.ID)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "person %d not found", p.ID)
	}
	p.CreatedAt = s.people[i].CreatedAt
	p.UpdatedAt = s.now().UTC()
	s.people[i] = *p
	return nil
}

func (s *Store) DeletePerson(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "person %d not found", id)
	}
	s.people = slices.Delete(s.people, i, i+1)
	s.rels = slices.DeleteFunc(s.rels, func(r family.Relationship) bool {
		return r.PersonID == id || r.RelatedPersonID == id
	})
	return nil
}

func (s *Store) ListRelationships(_ context.Context) ([]family.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rels), nil
}

func (s *Store) CreateRelationship(_ context.Context, r *family.Relationship) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range []int64{r.PersonID, r.RelatedPersonID} {
		if s.indexOf(id) < 0 {
			return errors.New(errors.ErrCodeConstraintViolation, "person %d does not exist", id)
		}
	}
	r.ID = s.nextRID
	r.CreatedAt = s.now().UTC()
	s.nextRID++
	s.rels = append(s.rels, *r)
	return nil
}

func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people, s.rels = nil, nil
	s.nextPID, s.nextRID = 1, 1
	return nil
}

// Close saves file-backed stores.
func (s *Store) Close() error { return s.Save() }

// indexOf returns the position of id in s.people or -1. People are kept in
// id order, so a binary search suffices.
func (s *Store) indexOf(id int64) int {
	i, ok := slices.BinarySearchFunc(s.people, id, func(p family.Person, id int64) int {
		switch {
		case p.ID < id:
			return -1
		case p.ID > id:
			return 1
		}
		return 0
	})
	if !ok {
		return -1
	}
	return i
}
