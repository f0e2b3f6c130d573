package layout

import (
	"fmt"

	"github.com/matzehuels/familytree/pkg/layout/ordering"
)

// Defaults match the chart dimensions of the web client.
const (
	DefaultNodeWidth  = 180.0
	DefaultNodeHeight = 60.0
	DefaultRankSep    = 80.0
	DefaultNodeSep    = 100.0
	DefaultSpouseGap  = 40.0
	DefaultMargin     = 20.0
)

// Options holds the layout parameters. Construct with [DefaultOptions] and
// modify via [Option] functions.
type Options struct {
	NodeWidth  float64          `json:"node_width"`
	NodeHeight float64          `json:"node_height"`
	RankSep    float64          `json:"rank_sep"`   // vertical gap between generations
	NodeSep    float64          `json:"node_sep"`   // horizontal gap between unrelated boxes and siblings
	SpouseGap  float64          `json:"spouse_gap"` // horizontal gap inside a couple
	Margin     float64          `json:"margin"`
	Orderer    ordering.Orderer `json:"-"`
}

// Option configures [Options].
type Option func(*Options)

// DefaultOptions returns the default layout parameters.
func DefaultOptions() Options {
	return Options{
		NodeWidth:  DefaultNodeWidth,
		NodeHeight: DefaultNodeHeight,
		RankSep:    DefaultRankSep,
		NodeSep:    DefaultNodeSep,
		SpouseGap:  DefaultSpouseGap,
		Margin:     DefaultMargin,
		Orderer:    ordering.Barycentric{Passes: ordering.DefaultPasses},
	}
}

// WithNodeSize sets the box size. Non-positive values are ignored.
func WithNodeSize(width, height float64) Option {
	return func(o *Options) {
		if width > 0 {
			o.NodeWidth = width
		}
		if height > 0 {
			o.NodeHeight = height
		}
	}
}

// WithSeparation sets the gap between generations and between siblings.
// Negative values are ignored.
func WithSeparation(rankSep, nodeSep float64) Option {
	return func(o *Options) {
		if rankSep >= 0 {
			o.RankSep = rankSep
		}
		if nodeSep >= 0 {
			o.NodeSep = nodeSep
		}
	}
}

// WithSpouseGap sets the gap between the two boxes of a couple.
func WithSpouseGap(gap float64) Option {
	return func(o *Options) {
		if gap >= 0 {
			o.SpouseGap = gap
		}
	}
}

// WithMargin sets the empty border around the drawing.
func WithMargin(m float64) Option {
	return func(o *Options) {
		if m >= 0 {
			o.Margin = m
		}
	}
}

// WithOrderer replaces the within-generation ordering heuristic.
func WithOrderer(orderer ordering.Orderer) Option {
	return func(o *Options) {
		if orderer != nil {
			o.Orderer = orderer
		}
	}
}

// NewOptions applies opts to the defaults.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Key returns a stable string identifying these options, for use in cache
// keys.
func (o Options) Key() string {
	return fmt.Sprintf("w%g:h%g:r%g:n%g:s%g:m%g:%T%+v",
		o.NodeWidth, o.NodeHeight, o.RankSep, o.NodeSep, o.SpouseGap, o.Margin, o.Orderer, o.Orderer)
}

func (o Options) spouseStep() float64  { return o.NodeWidth + o.SpouseGap }
func (o Options) siblingStep() float64 { return o.NodeWidth + o.NodeSep }
