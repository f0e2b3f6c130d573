package family

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Snapshot is the full set of people and relationships at the moment a
// layout is requested. Layout treats it as read-only.
type Snapshot struct {
	People        []Person       `json:"people"`
	Relationships []Relationship `json:"relationships"`
}

// PersonByID returns the person with the given ID.
func (s Snapshot) PersonByID(id int64) (Person, bool) {
	for _, p := range s.People {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// Hash returns a content hash of the people and relationships that affect
// layout. Timestamps are excluded so that touching a row without changing it
// does not invalidate cached layouts.
func (s Snapshot) Hash() string {
	type personKey struct {
		ID       int64
		Name     string
		Birth    *int
		Death    *int
		Gender   Gender
		Favorite bool
	}
	type relKey struct {
		From, To int64
		Type     RelationType
	}
	people := make([]personKey, len(s.People))
	for i, p := range s.People {
		people[i] = personKey{p.ID, p.Name, p.BirthYear, p.DeathYear, p.Gender, p.IsFavorite}
	}
	rels := make([]relKey, len(s.Relationships))
	for i, r := range s.Relationships {
		rels[i] = relKey{r.PersonID, r.RelatedPersonID, r.Type}
	}
	data, _ := json.Marshal([]any{people, rels})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WriteSnapshot writes s as indented JSON to w.
func WriteSnapshot(s Snapshot, w io.Writer) error {
	if s.People == nil {
		s.People = []Person{}
	}
	if s.Relationships == nil {
		s.Relationships = []Relationship{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a JSON snapshot from r.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode: %w", err)
	}
	return s, nil
}

// WriteSnapshotFile writes s to path, creating or truncating the file.
// A failed close is reported like a failed write.
func WriteSnapshotFile(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSnapshot(s, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ReadSnapshotFile reads a JSON snapshot from path.
func ReadSnapshotFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}
