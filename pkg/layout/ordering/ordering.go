package ordering

import "github.com/matzehuels/familytree/pkg/dag"

// Orderer determines the horizontal sequence of nodes in each row.
type Orderer interface {
	OrderRows(g *dag.DAG) map[int][]int64
}

// Identity keeps every row in insertion order.
type Identity struct{}

// OrderRows implements [Orderer].
func (Identity) OrderRows(g *dag.DAG) map[int][]int64 {
	return initialOrders(g)
}

func initialOrders(g *dag.DAG) map[int][]int64 {
	orders := make(map[int][]int64)
	for _, r := range g.RowIDs() {
		orders[r] = dag.NodeIDs(g.NodesInRow(r))
	}
	return orders
}

func cloneOrders(orders map[int][]int64) map[int][]int64 {
	c := make(map[int][]int64, len(orders))
	for r, ids := range orders {
		c[r] = append([]int64(nil), ids...)
	}
	return c
}
