package ordering

import (
	"slices"

	"github.com/matzehuels/familytree/pkg/dag"
)

// DefaultPasses is the number of sweeps used when Barycentric.Passes is zero.
const DefaultPasses = 24

// Barycentric orders rows with alternating barycenter sweeps.
type Barycentric struct {
	// Passes is the number of sweeps (top-down and bottom-up alternate).
	// Zero means DefaultPasses.
	Passes int
}

// OrderRows implements [Orderer].
func (b Barycentric) OrderRows(g *dag.DAG) map[int][]int64 {
	orders := initialOrders(g)
	rows := g.RowIDs()
	if len(rows) < 2 {
		return orders
	}

	passes := b.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}

	best := cloneOrders(orders)
	bestCrossings := dag.CountCrossings(g, orders)

	for pass := 0; pass < passes && bestCrossings > 0; pass++ {
		if pass%2 == 0 {
			for i := 1; i < len(rows); i++ {
				sortByBarycenter(orders[rows[i]], orders[rows[i]-1], g.Parents)
			}
		} else {
			for i := len(rows) - 2; i >= 0; i-- {
				sortByBarycenter(orders[rows[i]], orders[rows[i]+1], g.Children)
			}
		}
		transpose(g, orders, rows)

		if c := dag.CountCrossings(g, orders); c < bestCrossings {
			best, bestCrossings = cloneOrders(orders), c
		}
	}
	return best
}

// sortByBarycenter reorders row in place by the mean position of each node's
// neighbours in the fixed adjacent row. Nodes without neighbours there keep
// their current position as key.
func sortByBarycenter(row, fixed []int64, neighbours func(int64) []int64) {
	pos := dag.PosMap(fixed)
	keys := make(map[int64]float64, len(row))
	for i, id := range row {
		sum, n := 0.0, 0
		for _, nb := range neighbours(id) {
			if p, ok := pos[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		if n == 0 {
			keys[id] = float64(i)
			continue
		}
		keys[id] = sum / float64(n)
	}
	slices.SortStableFunc(row, func(a, b int64) int {
		switch ka, kb := keys[a], keys[b]; {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
}

// transpose swaps adjacent nodes while doing so strictly reduces crossings
// with the neighbouring rows.
func transpose(g *dag.DAG, orders map[int][]int64, rows []int) {
	for improved := true; improved; {
		improved = false
		for _, r := range rows {
			row := orders[r]
			for i := 0; i+1 < len(row); i++ {
				before := localCrossings(g, orders, r)
				row[i], row[i+1] = row[i+1], row[i]
				if localCrossings(g, orders, r) < before {
					improved = true
					continue
				}
				row[i], row[i+1] = row[i+1], row[i]
			}
		}
	}
}

func localCrossings(g *dag.DAG, orders map[int][]int64, r int) int {
	return dag.CountLayerCrossings(g, orders[r-1], orders[r]) +
		dag.CountLayerCrossings(g, orders[r], orders[r+1])
}
