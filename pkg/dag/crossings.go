package dag

import (
	"maps"
	"slices"
)

// CountCrossings returns the total number of edge crossings for the given row
// orderings, summed over each pair of consecutive rows. Rows absent from the
// map are treated as empty.
func CountCrossings(g *DAG, orders map[int][]int64) int {
	rows := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for i := 0; i < len(rows)-1; i++ {
		r := rows[i]
		crossings += CountLayerCrossings(g, orders[r], orders[r+1])
	}
	return crossings
}

// CountLayerCrossings counts crossings between edges from upper to lower
// using a Fenwick tree in O(E log V).
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// Edges that skip the lower row (a child more than one generation down) are
// ignored.
func CountLayerCrossings(g *DAG, upper, lower []int64) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)

	type edge struct{ upper, lower int }
	edges := make([]edge, 0, len(upper)*2)
	for i, id := range upper {
		for _, child := range g.Children(id) {
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
