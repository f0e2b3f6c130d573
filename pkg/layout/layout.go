package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/familytree/pkg/family"
)

// Node is a positioned person. Rank is the generation assigned by [Rank];
// Row is the level the box is drawn on, counted from the top. They differ
// for a spouse moved to their partner's level.
type Node struct {
	PersonID int64   `json:"id"`
	Rank     int     `json:"rank"`
	Row      int     `json:"row"`
	X        float64 `json:"x"` // box centre
	Y        float64 `json:"y"` // box centre
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Partner  int64   `json:"partner,omitempty"`
}

// Box returns the top-left corner and size of the node's rectangle.
func (n Node) Box() (x, y, w, h float64) {
	return n.X - n.Width/2, n.Y - n.Height/2, n.Width, n.Height
}

// Layout is the result of [Compute].
type Layout struct {
	Nodes   []Node  `json:"nodes"` // in snapshot order
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Options Options `json:"-"`

	byID map[int64]int
}

// Node returns the node for a person.
func (l Layout) Node(id int64) (Node, bool) {
	if l.byID == nil {
		for _, n := range l.Nodes {
			if n.PersonID == id {
				return n, true
			}
		}
		return Node{}, false
	}
	i, ok := l.byID[id]
	if !ok {
		return Node{}, false
	}
	return l.Nodes[i], true
}

// Rows groups nodes by level, top to bottom, each sorted left to right.
func (l Layout) Rows() [][]Node {
	sorted := slices.Clone(l.Nodes)
	slices.SortStableFunc(sorted, func(a, b Node) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	var rows [][]Node
	for i, n := range sorted {
		if i == 0 || n.Y != sorted[i-1].Y {
			rows = append(rows, nil)
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], n)
	}
	return rows
}

// Compute lays out snap. It is safe to call concurrently on shared input
// and always returns the same result for the same snapshot and options.
func Compute(snap family.Snapshot, opts ...Option) Layout {
	o := NewOptions(opts...)

	idx := BuildIndex(snap.Relationships)
	placements := Position(Rank(snap.People, idx, o), idx, o)

	l := Layout{
		Nodes:   make([]Node, len(placements)),
		Options: o,
		byID:    make(map[int64]int, len(placements)),
	}
	for i, pl := range placements {
		l.byID[pl.PersonID] = i
	}

	right, bottom := 0.0, 0.0
	for i, pl := range placements {
		n := Node{
			PersonID: pl.PersonID,
			Rank:     pl.Rank,
			X:        pl.X,
			Y:        pl.Y,
			Width:    o.NodeWidth,
			Height:   o.NodeHeight,
		}
		if partner, ok := idx.Partner(pl.PersonID); ok {
			if _, present := l.byID[partner]; present {
				n.Partner = partner
			}
		}
		l.Nodes[i] = n
		right = math.Max(right, pl.X+o.NodeWidth/2)
		bottom = math.Max(bottom, pl.Y+o.NodeHeight/2)
	}
	assignRows(l.Nodes)
	if len(placements) > 0 {
		l.Width = right + o.Margin
		l.Height = bottom + o.Margin
	}
	return l
}

// assignRows numbers the distinct Y levels top to bottom.
func assignRows(nodes []Node) {
	levels := make([]float64, 0, len(nodes))
	for _, n := range nodes {
		levels = append(levels, n.Y)
	}
	slices.Sort(levels)
	levels = slices.Compact(levels)
	for i := range nodes {
		nodes[i].Row, _ = slices.BinarySearch(levels, nodes[i].Y)
	}
}
