// Package layout computes positions for a family-tree chart.
//
// # Pipeline
//
// [Compute] runs four pure stages over a [family.Snapshot]:
//
//  1. [BuildIndex] makes one pass over the relationships and records who is
//     married to whom, who is whose child, and which single spouse acts as
//     each person's positioning partner.
//  2. [Rank] builds a throwaway hierarchy graph from parent → child edges,
//     assigns generations by longest path and orders each generation with a
//     barycentric heuristic.
//  3. [Position] moves spouse pairs next to each other on one level and
//     centres their shared children beneath them.
//  4. A final sweep removes overlaps within each level and translates the
//     drawing so it starts at the configured margin.
//
// Nothing is cached between calls and no state is shared; callers re-run
// Compute on every data change. For a fixed snapshot the result is identical
// down to the last bit of every coordinate.
//
// # Coordinates
//
// Node X and Y are box centres. Y grows downwards; generation 0 is on top.
//
// # Malformed Input
//
// A person recorded as their own ancestor produces a cycle; one edge of the
// cycle is ignored for ranking and layout continues. Relationships naming a
// person missing from the snapshot are ignored. Compute never fails.
package layout
