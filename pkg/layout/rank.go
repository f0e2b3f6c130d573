package layout

import (
	"github.com/matzehuels/familytree/pkg/dag"
	"github.com/matzehuels/familytree/pkg/dag/transform"
	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/layout/ordering"
)

// Placement is a person's generation and box centre at some stage of the
// layout.
type Placement struct {
	PersonID int64
	Rank     int
	X, Y     float64
}

// Rank assigns a generation and a baseline position to every person, using
// only parent → child edges. The result follows the order of people; a
// repeated person ID keeps its first occurrence.
//
// Generation 0 is packed left to right. Every lower generation is placed at
// its parents' mean X in the order chosen by opts.Orderer and then swept
// right so that neighbouring centres are at least NodeWidth+NodeSep apart.
func Rank(people []family.Person, idx *Index, opts Options) []Placement {
	g := dag.New()
	var ids []int64
	for _, p := range people {
		if g.AddNode(dag.Node{ID: p.ID}) == nil {
			ids = append(ids, p.ID)
		}
	}
	for _, id := range ids {
		for _, child := range idx.ChildrenOf(id) {
			// Self-loops and children missing from the snapshot are rejected
			// by the graph and simply not drawn.
			_ = g.AddEdge(dag.Edge{From: id, To: child})
		}
	}

	transform.BreakCycles(g)
	transform.AssignLayers(g)

	orderer := opts.Orderer
	if orderer == nil {
		orderer = ordering.Barycentric{}
	}
	orders := orderer.OrderRows(g)

	step := opts.siblingStep()
	x := make(map[int64]float64, len(ids))
	for i, row := range g.RowIDs() {
		order := completeRow(orders[row], g.NodesInRow(row))
		for j, id := range order {
			if i == 0 {
				x[id] = float64(j) * step
				continue
			}
			want := parentCentre(g, id, x)
			if j > 0 {
				if floor := x[order[j-1]] + step; want < floor {
					want = floor
				}
			}
			x[id] = want
		}
	}

	placements := make([]Placement, len(ids))
	for i, id := range ids {
		n, _ := g.Node(id)
		placements[i] = Placement{
			PersonID: id,
			Rank:     n.Row,
			X:        x[id],
			Y:        float64(n.Row)*(opts.NodeHeight+opts.RankSep) + opts.NodeHeight/2,
		}
	}
	return placements
}

// completeRow drops IDs the orderer invented and appends nodes it forgot,
// so a custom Orderer cannot lose people.
func completeRow(order []int64, nodes []*dag.Node) []int64 {
	inRow := make(map[int64]bool, len(nodes))
	for _, n := range nodes {
		inRow[n.ID] = true
	}
	out := make([]int64, 0, len(nodes))
	for _, id := range order {
		if inRow[id] {
			out = append(out, id)
			delete(inRow, id)
		}
	}
	for _, n := range nodes {
		if inRow[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}

func parentCentre(g *dag.DAG, id int64, x map[int64]float64) float64 {
	parents := g.Parents(id)
	if len(parents) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range parents {
		sum += x[p]
	}
	return sum / float64(len(parents))
}
