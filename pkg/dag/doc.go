// Package dag provides the short-lived directed graph the ranker builds for
// each layout pass.
//
// # Overview
//
// Family trees are layered drawings: every generation occupies one row and
// parent → child edges always point downwards. This package holds the
// hierarchy part of the tree (people as nodes, parent → child edges) and
// organises nodes into rows so that ranking and ordering algorithms can walk
// the graph generation by generation.
//
// A DAG is built fresh for every layout call and discarded afterwards; there
// is no process-wide graph state.
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: 1})
//	g.AddNode(dag.Node{ID: 2})
//	g.AddEdge(dag.Edge{From: 1, To: 2})
//
// Query the structure with [DAG.Children], [DAG.Parents], [DAG.NodesInRow] and
// related methods. Unlike a map-backed graph, every listing method returns
// nodes in insertion order so that layouts are reproducible run to run.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count crossings between adjacent
// rows with a Fenwick tree in O(E log V). The ordering heuristic uses them to
// keep the best ordering it has seen.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
//
// # Related Packages
//
// The [transform] subpackage assigns rows (longest path) and breaks cycles
// that malformed input may contain.
//
// [transform]: github.com/matzehuels/familytree/pkg/dag/transform
package dag
