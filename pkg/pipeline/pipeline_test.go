package pipeline

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytree/pkg/cache"
	"github.com/matzehuels/familytree/pkg/family"
)

type fakeSource struct {
	people []family.Person
	rels   []family.Relationship
	err    error
	calls  atomic.Int32
}

func (s *fakeSource) ListPeople(ctx context.Context) ([]family.Person, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.people, nil
}

func (s *fakeSource) ListRelationships(ctx context.Context) ([]family.Relationship, error) {
	s.calls.Add(1)
	return s.rels, nil
}

func smallFamily() *fakeSource {
	return &fakeSource{
		people: []family.Person{
			{ID: 1, Name: "John Smith", Gender: family.GenderMale},
			{ID: 2, Name: "Sarah Smith", Gender: family.GenderFemale},
			{ID: 3, Name: "Emma Smith", Gender: family.GenderFemale},
		},
		rels: []family.Relationship{
			{ID: 1, PersonID: 1, RelatedPersonID: 2, Type: family.RelationSpouse},
			{ID: 2, PersonID: 1, RelatedPersonID: 3, Type: family.RelationChild},
			{ID: 3, PersonID: 2, RelatedPersonID: 3, Type: family.RelationChild},
		},
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"nodelink", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != 2 {
		t.Errorf("Scale = %v, want 2", opts.Scale)
	}

	for name, bad := range map[string]Options{
		"negative node_sep": {NodeSep: -1},
		"infinite width":    {NodeWidth: math.Inf(1)},
		"NaN spouse gap":    {SpouseGap: math.NaN()},
	} {
		if err := bad.ValidateAndSetDefaults(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestExecute(t *testing.T) {
	src := smallFamily()
	r := NewRunner(src, nil, nil, quietLogger())

	res, err := r.Execute(context.Background(), Options{Formats: []string{"svg", "json", "dot"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.People != 3 || res.Stats.Relationships != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if len(res.Layout.Nodes) != 3 {
		t.Errorf("layout nodes = %d, want 3", len(res.Layout.Nodes))
	}
	if len(res.Scene.Boxes) != 3 {
		t.Errorf("scene boxes = %d, want 3", len(res.Scene.Boxes))
	}
	if !bytes.HasPrefix(res.Artifacts["svg"], []byte("<svg")) {
		t.Errorf("svg artifact does not start with <svg")
	}
	if !bytes.Contains(res.Artifacts["json"], []byte(`"nodes"`)) {
		t.Errorf("json artifact missing nodes")
	}
	if !strings.Contains(string(res.Artifacts["dot"]), "p1 -> p3") {
		t.Errorf("dot artifact missing hierarchy edge:\n%s", res.Artifacts["dot"])
	}
	if res.SnapshotHash != res.Snapshot.Hash() {
		t.Error("SnapshotHash does not match snapshot")
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("null cache should never hit")
	}
}

func TestExecuteCached(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(smallFamily(), c, nil, quietLogger())
	ctx := context.Background()
	opts := Options{Formats: []string{"svg", "json"}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", second.CacheInfo)
	}
	for i, n := range first.Layout.Nodes {
		if second.Layout.Nodes[i] != n {
			t.Errorf("cached node %d = %+v, want %+v", i, second.Layout.Nodes[i], n)
		}
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}
	if second.Layout.Options.NodeWidth == 0 {
		t.Error("cached layout lost its options")
	}

	refreshed, err := r.Execute(ctx, Options{Formats: []string{"svg", "json"}, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteOptionsChangeKey(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(smallFamily(), c, nil, quietLogger())
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{NodeWidth: 120})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("different node width should miss the layout cache")
	}
	if res.Layout.Nodes[0].Width != 120 {
		t.Errorf("node width = %v, want 120", res.Layout.Nodes[0].Width)
	}
}

func TestExecuteSourceError(t *testing.T) {
	boom := errors.New("boom")
	src := smallFamily()
	src.err = boom
	r := NewRunner(src, nil, nil, quietLogger())

	_, err := r.Execute(context.Background(), Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	src := smallFamily()
	r := NewRunner(src, nil, nil, quietLogger())
	if _, err := r.Execute(context.Background(), Options{Formats: []string{"gif"}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if src.calls.Load() != 0 {
		t.Error("source should not be read when options are invalid")
	}
}

func TestLoadSnapshot(t *testing.T) {
	src := smallFamily()
	snap, err := LoadSnapshot(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.People) != 3 || len(snap.Relationships) != 3 {
		t.Errorf("snapshot = %d people, %d relationships", len(snap.People), len(snap.Relationships))
	}
	if src.calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", src.calls.Load())
	}
}
