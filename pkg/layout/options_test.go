package layout

import (
	"testing"

	"github.com/matzehuels/familytree/pkg/layout/ordering"
)

func TestOptionsKey(t *testing.T) {
	base := NewOptions().Key()
	if again := NewOptions().Key(); again != base {
		t.Errorf("Key not stable: %q vs %q", base, again)
	}

	distinct := map[string]Options{
		"default":      NewOptions(),
		"wider":        NewOptions(WithNodeSize(200, 60)),
		"identity":     NewOptions(WithOrderer(ordering.Identity{})),
		"one pass":     NewOptions(WithOrderer(ordering.Barycentric{Passes: 1})),
		"eight passes": NewOptions(WithOrderer(ordering.Barycentric{Passes: 8})),
	}
	seen := make(map[string]string)
	for name, o := range distinct {
		k := o.Key()
		if prev, ok := seen[k]; ok {
			t.Errorf("%s and %s share key %q", name, prev, k)
		}
		seen[k] = name
	}
}
