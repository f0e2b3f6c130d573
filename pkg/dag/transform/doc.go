// Package transform prepares a hierarchy graph for layered drawing.
//
// # Cycle Breaking
//
// Stored relationships are not validated for acyclicity: a data-entry error
// can make someone their own ancestor. [BreakCycles] removes back edges found
// by a depth-first search so the remaining graph is a DAG. The search starts
// from sources in insertion order, so the same input always loses the same
// edges.
//
// # Layer Assignment
//
// [AssignLayers] places every node one row below its deepest parent (longest
// path from the sources). People without parents land in row 0, so an
// in-married spouse starts in the top row and is pulled down beside their
// partner later by the positioner.
package transform
