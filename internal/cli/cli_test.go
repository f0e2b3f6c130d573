package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/familytree/internal/store"
	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/layout"
	"github.com/matzehuels/familytree/pkg/observability"
)

// captureOutput redirects command output to a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

// testEnv points config, data and cache at a temp dir and returns it.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("FAMILYTREE_STORE", "file")
	t.Setenv("FAMILYTREE_DATA_FILE", filepath.Join(dir, "data", "tree.json"))
	t.Setenv("FAMILYTREE_NATS_URL", "")
	t.Setenv("FAMILYTREE_REDIS_URL", "")
	t.Setenv("FAMILYTREE_CACHE_DIR", "")
	t.Cleanup(observability.Reset)
	return dir
}

// runCLI executes one command line against a fresh CLI.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := captureOutput(t)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	output, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return output
}

func exportSnapshot(t *testing.T, dir string) family.Snapshot {
	t.Helper()
	path := filepath.Join(dir, "export.json")
	mustRun(t, "export", path)
	snap, err := family.ReadSnapshotFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

func TestSeedExportRender(t *testing.T) {
	dir := testEnv(t)
	sample := store.SampleFamily()

	mustRun(t, "seed")
	if _, err := runCLI(t, "seed"); err == nil {
		t.Error("seeding a non-empty tree should fail without --append")
	}

	snap := exportSnapshot(t, dir)
	if len(snap.People) != len(sample.People) || len(snap.Relationships) != len(sample.Links) {
		t.Fatalf("exported %d people, %d relationships; want %d, %d",
			len(snap.People), len(snap.Relationships), len(sample.People), len(sample.Links))
	}

	base := filepath.Join(dir, "charts", "tree")
	output := mustRun(t, "render", "-f", "svg,dot,json", "-o", base, "--no-cache")
	for _, ext := range []string{".svg", ".dot", ".json"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s: %v", ext, err)
		}
	}
	if !strings.Contains(output, base+".svg") {
		t.Errorf("render output should list written files, got %q", output)
	}
	svg, _ := os.ReadFile(base + ".svg")
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("Robert Miller")) {
		t.Error("svg should contain the chart and names")
	}
}

func TestRenderFromInputFile(t *testing.T) {
	dir := testEnv(t)
	input := filepath.Join(dir, "backup.json")
	snap := family.Snapshot{
		People: []family.Person{
			{ID: 1, Name: "Ada", Gender: family.GenderFemale},
			{ID: 2, Name: "Byron", Gender: family.GenderMale},
		},
		Relationships: []family.Relationship{{ID: 1, PersonID: 1, RelatedPersonID: 2, Type: family.RelationSpouse}},
	}
	if err := family.WriteSnapshotFile(snap, input); err != nil {
		t.Fatal(err)
	}

	svg := filepath.Join(dir, "couple.svg")
	mustRun(t, "--store", "memory", "render", "--input", input, "-o", svg, "--title", "Couple")
	data, err := os.ReadFile(svg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("Byron")) || !bytes.Contains(data, []byte("Couple")) {
		t.Error("svg should contain the people and title")
	}

	// Second run is served from the cache.
	output := mustRun(t, "--store", "memory", "render", "--input", input, "-o", svg, "--title", "Couple")
	if !strings.Contains(output, iconCached) {
		t.Errorf("second render should be cached, got %q", output)
	}
}

func TestPersonCommands(t *testing.T) {
	dir := testEnv(t)

	mustRun(t, "person", "add", "Ada Lovelace", "--gender", "female", "--birth", "1815", "--death", "1852")
	mustRun(t, "person", "add", "William King", "--gender", "male", "--birth", "1805")
	mustRun(t, "relate", "1", "2", "--type", "spouse")

	listing := mustRun(t, "person", "list")
	if !strings.Contains(listing, "Ada Lovelace") || !strings.Contains(listing, "1815 - 1852") {
		t.Errorf("person list = %q", listing)
	}
	shown := mustRun(t, "person", "show", "1")
	if !strings.Contains(shown, "spouse") || !strings.Contains(shown, "William King") {
		t.Errorf("person show = %q", shown)
	}

	mustRun(t, "person", "delete", "2")
	snap := exportSnapshot(t, dir)
	if len(snap.People) != 1 || len(snap.Relationships) != 0 {
		t.Errorf("after delete: %d people, %d relationships; want 1, 0", len(snap.People), len(snap.Relationships))
	}
}

func TestPersonCommandErrors(t *testing.T) {
	testEnv(t)
	tests := []struct {
		name string
		args []string
	}{
		{"empty name", []string{"person", "add", " "}},
		{"bad gender", []string{"person", "add", "X", "--gender", "robot"}},
		{"death before birth", []string{"person", "add", "X", "--birth", "1900", "--death", "1800"}},
		{"bad id", []string{"person", "show", "abc"}},
		{"unknown person", []string{"person", "show", "42"}},
		{"relate unknown", []string{"relate", "1", "2"}},
		{"bad relation type", []string{"relate", "1", "2", "--type", "cousin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Errorf("%v should fail", tt.args)
			}
		})
	}
}

func TestReset(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, "seed")

	if _, err := runCLI(t, "reset"); err == nil {
		t.Fatal("reset without --force should fail")
	}
	mustRun(t, "reset", "--force")

	starter := store.StarterFamily()
	snap := exportSnapshot(t, dir)
	if len(snap.People) != len(starter.People) || len(snap.Relationships) != len(starter.Links) {
		t.Fatalf("after reset: %d people, %d relationships", len(snap.People), len(snap.Relationships))
	}
	if snap.People[0].ID != 1 {
		t.Errorf("ids should restart at 1, got %d", snap.People[0].ID)
	}

	mustRun(t, "reset", "--force", "--empty")
	if snap := exportSnapshot(t, dir); len(snap.People) != 0 {
		t.Errorf("reset --empty left %d people", len(snap.People))
	}
}

func TestStats(t *testing.T) {
	testEnv(t)
	mustRun(t, "reset", "--force")

	output := mustRun(t, "stats")
	for _, want := range []string{"people", "relationships", "John Smith", "James Smith"} {
		if !strings.Contains(output, want) {
			t.Errorf("stats output missing %q", want)
		}
	}
	if strings.Index(output, "John Smith") > strings.Index(output, "James Smith") {
		t.Error("stats should list people oldest first")
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, "seed")

	table := mustRun(t, "layout", "--no-cache")
	if !strings.Contains(table, "Emily Miller") || !strings.Contains(table, "Gen") {
		t.Errorf("layout table = %q", table)
	}

	path := filepath.Join(dir, "layout.json")
	mustRun(t, "layout", "-o", path, "--node-width", "120", "--ordering", "identity")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatal(err)
	}
	if len(l.Nodes) != len(store.SampleFamily().People) {
		t.Fatalf("layout has %d nodes", len(l.Nodes))
	}
	for _, n := range l.Nodes {
		if n.Width != 120 {
			t.Errorf("node %d width = %v, want 120", n.PersonID, n.Width)
		}
	}

	if _, err := runCLI(t, "layout", "--ordering", "random"); err == nil {
		t.Error("unknown ordering should fail")
	}
}

func TestMigrateWithoutPostgres(t *testing.T) {
	testEnv(t)
	output := mustRun(t, "migrate")
	if !strings.Contains(output, "no schema") {
		t.Errorf("migrate output = %q", output)
	}
}

func TestUnknownStore(t *testing.T) {
	testEnv(t)
	if _, err := runCLI(t, "--store", "sqlite", "person", "list"); err == nil {
		t.Error("unknown store should fail")
	}
}

func TestCacheCommands(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, "seed")
	mustRun(t, "render", "-o", filepath.Join(dir, "tree.svg"))

	path := strings.TrimSpace(mustRun(t, "cache", "path"))
	if path != filepath.Join(dir, "cache", appName) {
		t.Errorf("cache path = %q", path)
	}
	if countFiles(path) == 0 {
		t.Fatal("render should have populated the cache")
	}
	mustRun(t, "cache", "clear")
	if n := countFiles(path); n != 0 {
		t.Errorf("%d files left after clear", n)
	}
}

func TestVersionCommand(t *testing.T) {
	testEnv(t)
	if output := mustRun(t, "version"); !strings.Contains(output, "version:") {
		t.Errorf("version output = %q", output)
	}
}
