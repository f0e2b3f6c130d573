package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/familytree/pkg/family"
)

const eps = 1e-9

func people(names ...string) []family.Person {
	ps := make([]family.Person, len(names))
	for i, n := range names {
		ps[i] = family.Person{ID: int64(i + 1), Name: n}
	}
	return ps
}

func spouse(a, b int64) family.Relationship {
	return family.Relationship{PersonID: a, RelatedPersonID: b, Type: family.RelationSpouse}
}

func child(parent, kid int64) family.Relationship {
	return family.Relationship{PersonID: parent, RelatedPersonID: kid, Type: family.RelationChild}
}

func parent(parent, kid int64) family.Relationship {
	return family.Relationship{PersonID: parent, RelatedPersonID: kid, Type: family.RelationParent}
}

func mustNode(t *testing.T, l Layout, id int64) Node {
	t.Helper()
	n, ok := l.Node(id)
	if !ok {
		t.Fatalf("no node for person %d", id)
	}
	return n
}

func near(a, b float64) bool { return math.Abs(a-b) < eps }

// threeGenerations is a grandparent couple with two children, one of whom
// married in a spouse without recorded parents and has a child.
func threeGenerations() family.Snapshot {
	return family.Snapshot{
		People: people("Grandpa", "Grandma", "Bob", "Carol", "Alice", "Kid"),
		Relationships: []family.Relationship{
			spouse(1, 2),
			child(1, 3), child(2, 3),
			child(1, 4), child(2, 4),
			spouse(3, 5),
			parent(3, 6), parent(5, 6),
		},
	}
}

// wideFamily mixes remarriage, half siblings and unrelated people so that
// the overlap sweep has work to do.
func wideFamily() family.Snapshot {
	return family.Snapshot{
		People: people("A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N"),
		Relationships: []family.Relationship{
			spouse(1, 2), spouse(1, 3), spouse(4, 5),
			child(1, 6), child(2, 6), child(1, 7), child(3, 7),
			child(4, 8), child(5, 8), child(4, 9), child(5, 9), child(4, 10),
			spouse(6, 8), child(6, 11), child(8, 11), child(6, 12), child(8, 12),
			spouse(9, 13), child(9, 14),
		},
	}
}
