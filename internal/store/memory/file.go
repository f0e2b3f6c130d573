package memory

import (
	"cmp"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
)

// Open returns a store loaded from the snapshot file at path. A missing
// file yields an empty store. Close writes the contents back to path.
func Open(path string) (*Store, error) {
	s := New()
	s.path = path

	snap, err := family.ReadSnapshotFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "load %s", path)
	}

	s.people = slices.SortedFunc(slices.Values(snap.People), func(a, b family.Person) int {
		return cmp.Compare(a.ID, b.ID)
	})
	s.rels = slices.SortedFunc(slices.Values(snap.Relationships), func(a, b family.Relationship) int {
		return cmp.Compare(a.ID, b.ID)
	})
	if n := len(s.people); n > 0 {
		s.nextPID = s.people[n-1].ID + 1
	}
	if n := len(s.rels); n > 0 {
		s.nextRID = s.rels[n-1].ID + 1
	}
	return s, nil
}

// Save writes the store to its file. It is a no-op for stores created with
// [New].
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	s.mu.RLock()
	snap := family.Snapshot{People: slices.Clone(s.people), Relationships: slices.Clone(s.rels)}
	s.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "create data directory")
	}
	tmp := s.path + ".tmp"
	if err := family.WriteSnapshotFile(snap, tmp); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "save %s", s.path)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "save %s", s.path)
	}
	return nil
}
