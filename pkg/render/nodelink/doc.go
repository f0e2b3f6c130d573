// Package nodelink draws a family tree with Graphviz instead of the built-in
// layout engine.
//
// [ToDOT] converts a snapshot to DOT source: one box per person tinted by
// gender, solid parent → child arrows, and dashed undirected spouse edges
// held on one rank. [RenderSVG] runs the embedded Graphviz (WebAssembly, via
// goccy/go-graphviz) over the DOT source, so no system Graphviz install is
// needed.
//
//	dot := nodelink.ToDOT(snap, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG conversion of the resulting SVG lives in package render.
package nodelink
