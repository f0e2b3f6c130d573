package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/render"
	"github.com/matzehuels/familytree/pkg/render/styles"
)

// Options configures node-link diagram generation.
type Options struct {
	// Detailed adds the lifespan and places to node labels.
	// When false, only the name is shown.
	Detailed bool
}

// ToDOT converts a snapshot to Graphviz DOT source. Relationships naming a
// person missing from the snapshot are skipped and spouse edges are written
// once per couple.
func ToDOT(snap family.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph family {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"sans-serif\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#3B82F6\", penwidth=2];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.5;\n")
	buf.WriteString("\n")

	present := make(map[int64]bool, len(snap.People))
	for _, p := range snap.People {
		if present[p.ID] {
			continue
		}
		present[p.ID] = true
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(p, opts.Detailed)),
			fmt.Sprintf("fillcolor=%q", styles.Fill(render.ClassOf(p.Gender))),
		}
		if p.IsFavorite {
			attrs = append(attrs, "penwidth=3", `color="#F59E0B"`)
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(p.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	spouse := styles.StrokeFor(render.EdgeSpouse)
	seen := make(map[[3]int64]bool)
	for _, r := range snap.Relationships {
		a, b := r.PersonID, r.RelatedPersonID
		if !present[a] || !present[b] || a == b {
			continue
		}
		switch {
		case r.Type.IsHierarchy():
			if k := [3]int64{a, b, 0}; !seen[k] {
				seen[k] = true
				fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(a), nodeID(b))
			}
		case r.Type == family.RelationSpouse:
			lo, hi := min(a, b), max(a, b)
			if k := [3]int64{lo, hi, 1}; !seen[k] {
				seen[k] = true
				fmt.Fprintf(&buf, "  { rank=same; %s; %s; }\n", nodeID(lo), nodeID(hi))
				fmt.Fprintf(&buf, "  %s -> %s [dir=none, style=dashed, constraint=false, color=%q, penwidth=%g];\n",
					nodeID(lo), nodeID(hi), spouse.Color, spouse.Width)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int64) string { return "p" + strconv.FormatInt(id, 10) }

func fmtLabel(p family.Person, detailed bool) string {
	if !detailed {
		return p.Name
	}
	parts := []string{p.Name}
	if p.MaidenName != "" {
		parts = append(parts, "née "+p.MaidenName)
	}
	if s := p.Lifespan(); s != "" {
		parts = append(parts, s)
	}
	if p.BirthPlace != "" {
		parts = append(parts, "b. "+p.BirthPlace)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's pt-based root element so the SVG
// scales like the built-in renderer's output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
