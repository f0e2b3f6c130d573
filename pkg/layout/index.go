package layout

import (
	"slices"

	"github.com/matzehuels/familytree/pkg/family"
)

// EdgeKinds is the set of relationship kinds recorded between two people.
type EdgeKinds uint8

const (
	// Hierarchy marks a parent/child relationship in either direction.
	Hierarchy EdgeKinds = 1 << iota
	// Spouse marks a marriage.
	Spouse
)

// Has reports whether k contains all kinds in other.
func (k EdgeKinds) Has(other EdgeKinds) bool { return k&other == other }

type pair struct{ lo, hi int64 }

func pairOf(a, b int64) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// Index is a read-only lookup over a relationship list.
type Index struct {
	spouses  map[int64][]int64
	children map[int64][]int64
	parents  map[int64][]int64
	kinds    map[pair]EdgeKinds
	partner  map[int64]int64
}

// BuildIndex indexes rels in a single pass. Spouse edges are recorded for
// both people regardless of stored direction; parent and child edges both
// name the parent as PersonID. Repeated edges are recorded once and unknown
// relationship types are ignored.
//
// Partners are assigned greedily in input order: a spouse edge makes its two
// people partners unless either already has one. A person with several
// spouses is therefore partnered with the first one recorded.
func BuildIndex(rels []family.Relationship) *Index {
	idx := &Index{
		spouses:  make(map[int64][]int64),
		children: make(map[int64][]int64),
		parents:  make(map[int64][]int64),
		kinds:    make(map[pair]EdgeKinds),
		partner:  make(map[int64]int64),
	}
	for _, r := range rels {
		a, b := r.PersonID, r.RelatedPersonID
		switch {
		case r.Type.IsHierarchy():
			idx.children[a] = appendUnique(idx.children[a], b)
			idx.parents[b] = appendUnique(idx.parents[b], a)
			idx.kinds[pairOf(a, b)] |= Hierarchy
		case r.Type == family.RelationSpouse:
			idx.spouses[a] = appendUnique(idx.spouses[a], b)
			idx.spouses[b] = appendUnique(idx.spouses[b], a)
			idx.kinds[pairOf(a, b)] |= Spouse
			if a == b {
				continue
			}
			_, aTaken := idx.partner[a]
			_, bTaken := idx.partner[b]
			if !aTaken && !bTaken {
				idx.partner[a] = b
				idx.partner[b] = a
			}
		}
	}
	return idx
}

func appendUnique(ids []int64, id int64) []int64 {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

// SpousesOf returns everyone recorded as married to id, in first-seen order.
func (x *Index) SpousesOf(id int64) []int64 { return x.spouses[id] }

// ChildrenOf returns id's children in first-seen order.
func (x *Index) ChildrenOf(id int64) []int64 { return x.children[id] }

// ParentsOf returns id's parents in first-seen order.
func (x *Index) ParentsOf(id int64) []int64 { return x.parents[id] }

// Kinds reports the relationship kinds recorded between a and b in either
// direction.
func (x *Index) Kinds(a, b int64) EdgeKinds { return x.kinds[pairOf(a, b)] }

// Partner returns the spouse that id is positioned next to.
func (x *Index) Partner(id int64) (int64, bool) {
	p, ok := x.partner[id]
	return p, ok
}

// SharedChildren returns the children common to a and b, in a's order.
func (x *Index) SharedChildren(a, b int64) []int64 {
	var shared []int64
	for _, c := range x.children[a] {
		if slices.Contains(x.children[b], c) {
			shared = append(shared, c)
		}
	}
	return shared
}
