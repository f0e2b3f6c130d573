// Package ordering decides the left-to-right sequence of people within each
// generation of a ranked hierarchy graph.
//
// Finding an ordering with the fewest edge crossings is NP-hard, and family
// trees rarely need more than a heuristic. [Barycentric] implements the
// classic Sugiyama barycenter method: each person is positioned near the
// average position of their parents (top-down sweeps) or children (bottom-up
// sweeps), followed by an adjacent-swap transpose step. The ordering with the
// fewest crossings seen across all passes is returned.
//
// All sorts are stable and start from the graph's insertion order, so a
// fixed input always yields the same ordering. In particular siblings with
// identical parents keep the order in which they were recorded.
//
// [Identity] keeps insertion order and is useful as a baseline in tests.
//
//	var orderer ordering.Orderer = ordering.Barycentric{Passes: 24}
//	orders := orderer.OrderRows(g) // map[row][]personID
package ordering
