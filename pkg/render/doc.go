// Package render turns a computed layout into drawable output.
//
// # Overview
//
// [Project] is a pure mapping from a [layout.Layout] and the
// [family.Snapshot] it was computed from to a [Scene]: one labelled [Box]
// per person and one routed [Connector] per relationship. It does no
// geometry beyond routing connectors between box edges, keeps no state, and
// never fails. A relationship whose endpoint has no box is skipped, since a
// snapshot may be briefly inconsistent while data is being edited.
//
// Scenes are written out by the subpackages:
//
//   - [sink]: self-contained SVG and JSON
//   - [nodelink]: Graphviz DOT and Graphviz-rendered SVG
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg).
//
//	l := layout.Compute(snap)
//	scene := render.Project(l, snap)
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Classes
//
// Boxes carry a [GenderClass] (male, female or unspecified) and connectors
// an [EdgeClass]. Hierarchy connectors are orthogonal steps from the bottom
// of the parent to the top of the child. Spouse connectors join the facing
// sides of the two boxes and are deduplicated per couple, so a marriage
// stored in both directions is drawn once.
//
// [sink]: github.com/matzehuels/familytree/pkg/render/sink
// [nodelink]: github.com/matzehuels/familytree/pkg/render/nodelink
package render
