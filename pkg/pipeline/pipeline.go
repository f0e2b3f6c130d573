// Package pipeline runs the snapshot → layout → render chain shared by the
// CLI and the API server.
//
// # Stages
//
//  1. Snapshot: load people and relationships from a [Source]. Both lists
//     are fetched concurrently and layout starts only when both are in, so
//     it never sees half a snapshot.
//  2. Layout: [layout.Compute], cached by snapshot hash and layout options.
//  3. Render: produce the requested formats from the projected scene,
//     each cached by layout key and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(store, cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Formats: []string{"svg"}})
//	svg := result.Artifacts["svg"]
//
// Stages can be run on their own:
//
//	snap, err := runner.Snapshot(ctx)
//	l, hit, err := runner.Layout(ctx, snap, opts)
//	artifacts, hit, err := runner.Render(ctx, l, snap, opts)
package pipeline

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/layout"
	"github.com/matzehuels/familytree/pkg/layout/ordering"
	"github.com/matzehuels/familytree/pkg/render"
)

// Output formats.
const (
	FormatSVG      = "svg"      // built-in layout, SVG
	FormatJSON     = "json"     // built-in layout, positions and classes
	FormatPNG      = "png"      // built-in layout, via rsvg-convert
	FormatPDF      = "pdf"      // built-in layout, via rsvg-convert
	FormatDOT      = "dot"      // Graphviz source
	FormatNodelink = "nodelink" // Graphviz-rendered SVG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatJSON:     true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatDOT:      true,
	FormatNodelink: true,
}

// DefaultCacheTTL is how long layouts and artifacts stay cached.
const DefaultCacheTTL = 24 * time.Hour

// Options configures a pipeline run. It is JSON-serialisable for API
// requests.
type Options struct {
	// Layout options; zero values select the layout defaults.
	NodeWidth  float64 `json:"node_width,omitempty"`
	NodeHeight float64 `json:"node_height,omitempty"`
	RankSep    float64 `json:"rank_sep,omitempty"`
	NodeSep    float64 `json:"node_sep,omitempty"`
	SpouseGap  float64 `json:"spouse_gap,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // richer Graphviz labels
	Static   bool     `json:"static,omitempty"`   // SVG without hover script
	Scale    float64  `json:"scale,omitempty"`    // PNG scale

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger  *log.Logger      `json:"-"`
	Orderer ordering.Orderer `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"node_width": o.NodeWidth, "node_height": o.NodeHeight,
		"rank_sep": o.RankSep, "node_sep": o.NodeSep, "spouse_gap": o.SpouseGap,
	} {
		if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%s must be a finite, non-negative number", name)
		}
	}
	if o.Scale <= 0 {
		o.Scale = 2
	}
	return nil
}

// LayoutOptions converts the layout fields to [layout.Option] values.
func (o Options) LayoutOptions() []layout.Option {
	opts := []layout.Option{layout.WithNodeSize(o.NodeWidth, o.NodeHeight)}
	if o.RankSep > 0 || o.NodeSep > 0 {
		rs, ns := layout.DefaultRankSep, layout.DefaultNodeSep
		if o.RankSep > 0 {
			rs = o.RankSep
		}
		if o.NodeSep > 0 {
			ns = o.NodeSep
		}
		opts = append(opts, layout.WithSeparation(rs, ns))
	}
	if o.SpouseGap > 0 {
		opts = append(opts, layout.WithSpouseGap(o.SpouseGap))
	}
	if o.Orderer != nil {
		opts = append(opts, layout.WithOrderer(o.Orderer))
	}
	return opts
}

// ValidateFormat reports whether format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("unsupported format %q (want one of %v)", format, formatNames())
	}
	return nil
}

// ValidateFormats validates every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// Result holds the outputs of [Runner.Execute].
type Result struct {
	Snapshot     family.Snapshot
	SnapshotHash string
	Layout       layout.Layout
	Scene        render.Scene
	Artifacts    map[string][]byte
	Stats        Stats
	CacheInfo    CacheInfo
}

// Stats holds sizes and timings of a run.
type Stats struct {
	People        int
	Relationships int
	SnapshotTime  time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}
