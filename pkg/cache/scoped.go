package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving each family tree
// its own namespace in a shared cache.
//
//	keyer := cache.NewScopedKeyer(nil, "tree:smith:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(snapshotHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutKey, opts)
}
