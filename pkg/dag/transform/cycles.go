package transform

import "github.com/matzehuels/familytree/pkg/dag"

// BreakCycles removes back edges until the graph is acyclic and returns the
// number of edges removed. Traversal visits sources first and then any
// remaining nodes, both in insertion order.
func BreakCycles(g *dag.DAG) int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[int64]int, g.NodeCount())
	var backEdges []dag.Edge

	var dfs func(id int64)
	dfs = func(id int64) {
		color[id] = gray
		for _, child := range g.Children(id) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, dag.Edge{From: id, To: child})
			}
		}
		color[id] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, e := range backEdges {
		g.RemoveEdge(e.From, e.To)
	}
	return len(backEdges)
}
