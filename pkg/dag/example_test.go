package dag_test

import (
	"fmt"

	"github.com/matzehuels/familytree/pkg/dag"
)

func ExampleDAG_traversal() {
	// A couple (1, 2) with two children (3, 4).
	g := dag.New()
	for _, id := range []int64{1, 2, 3, 4} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: 1, To: 3})
	_ = g.AddEdge(dag.Edge{From: 1, To: 4})
	_ = g.AddEdge(dag.Edge{From: 2, To: 3})
	_ = g.AddEdge(dag.Edge{From: 2, To: 4})

	fmt.Println("Children of 1:", g.Children(1))
	fmt.Println("Parents of 3:", g.Parents(3))
	fmt.Println("Sources:", dag.NodeIDs(g.Sources()))
	// Output:
	// Children of 1: [3 4]
	// Parents of 3: [1 2]
	// Sources: [1 2]
}

func ExampleCountLayerCrossings() {
	// 1→4 and 2→3 cross when both rows are drawn in ID order.
	g := dag.New()
	for _, id := range []int64{1, 2, 3, 4} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: 1, To: 4})
	_ = g.AddEdge(dag.Edge{From: 2, To: 3})

	fmt.Println(dag.CountLayerCrossings(g, []int64{1, 2}, []int64{3, 4}))
	fmt.Println(dag.CountLayerCrossings(g, []int64{1, 2}, []int64{4, 3}))
	// Output:
	// 1
	// 0
}
