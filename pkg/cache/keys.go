package cache

// LayoutKeyOpts are the inputs besides the snapshot that change a layout.
type LayoutKeyOpts struct {
	Options string // layout.Options.Key()
}

// ArtifactKeyOpts are the inputs besides the layout that change a rendered
// artifact.
type ArtifactKeyOpts struct {
	Format   string
	Style    string
	Title    string
	Detailed bool
	Static   bool
	Scale    float64
	// Labels hashes the person fields shown in boxes but ignored by layout
	// (maiden names, places).
	Labels string
}

// Keyer builds cache keys.
type Keyer interface {
	LayoutKey(snapshotHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", snapshotHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutKey, opts)
}
