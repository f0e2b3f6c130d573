// Package pkg holds the reusable familytree libraries.
//
// # Overview
//
//  1. [family] - people, relationships and snapshots
//  2. [dag] - the generation graph and its transforms
//  3. [layout] - ranking and couple/sibling positioning
//  4. [render] - scene projection and SVG, JSON and Graphviz sinks
//  5. [pipeline] - snapshot → layout → render with caching
//  6. [cache], [observability], [errors], [buildinfo] - shared infrastructure
//
// # Data Flow
//
//	store (people + relationships)
//	         ↓
//	    [family.Snapshot]
//	         ↓
//	    [layout.Compute] (index → rank → position)
//	         ↓
//	    [render.Project] → SVG / JSON / DOT
//
// # Quick Start
//
//	snap := family.Snapshot{People: people, Relationships: rels}
//	l := layout.Compute(snap)
//	svg := sink.RenderSVG(render.Project(l, snap))
package pkg
