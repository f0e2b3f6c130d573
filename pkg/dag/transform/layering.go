package transform

import "github.com/matzehuels/familytree/pkg/dag"

// AssignLayers assigns every node to a row using the longest path from the
// sources (Kahn's algorithm). Sources sit in row 0 and each child sits one
// row below its deepest parent.
//
// The graph must be acyclic; run [BreakCycles] first. Nodes caught in a
// cycle never reach in-degree zero and keep row 0.
func AssignLayers(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[int64]int, len(nodes))
	rows := make(map[int64]int, len(nodes))
	queue := make([]int64, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		rows[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRows(rows)
}
