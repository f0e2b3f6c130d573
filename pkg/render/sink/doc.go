// Package sink writes a [render.Scene] to output formats.
//
// [RenderSVG] produces a self-contained SVG document: connectors are drawn
// beneath boxes, and hovering a person highlights their relationships. Use
// [WithStyle] to replace the default [styles.Simple] look.
//
// [RenderJSON] produces the positions and classes consumed by the web client:
// one entry per person with its centre and rectangle, and one entry per
// connector with its class and route.
//
//	svg := sink.RenderSVG(scene, sink.WithTitle("Smith family"))
//	data, err := sink.RenderJSON(scene)
//
// [render.Scene]: github.com/matzehuels/familytree/pkg/render.Scene
// [styles.Simple]: github.com/matzehuels/familytree/pkg/render/styles.Simple
package sink
