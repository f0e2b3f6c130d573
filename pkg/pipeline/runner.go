package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytree/pkg/cache"
	"github.com/matzehuels/familytree/pkg/family"
	"github.com/matzehuels/familytree/pkg/layout"
	"github.com/matzehuels/familytree/pkg/observability"
	"github.com/matzehuels/familytree/pkg/render"
	"github.com/matzehuels/familytree/pkg/render/nodelink"
	"github.com/matzehuels/familytree/pkg/render/sink"
)

// Runner executes the pipeline with caching. It holds no per-run state and
// may be shared between goroutines.
type Runner struct {
	Source Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner reading from src. A nil cache disables
// caching, a nil keyer selects [cache.DefaultKeyer] and a nil logger the
// default logger.
func NewRunner(src Source, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Source: src, Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs snapshot → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)
	result := &Result{}

	start := time.Now()
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	result.Snapshot = snap
	result.SnapshotHash = snap.Hash()
	result.Stats.SnapshotTime = time.Since(start)
	result.Stats.People = len(snap.People)
	result.Stats.Relationships = len(snap.Relationships)
	logger.Info("loaded tree",
		"people", result.Stats.People,
		"relationships", result.Stats.Relationships,
		"duration", result.Stats.SnapshotTime)

	start = time.Now()
	l, hit, err := r.Layout(ctx, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Scene = render.Project(l, snap)
	result.Stats.LayoutTime = time.Since(start)
	result.CacheInfo.LayoutHit = hit
	logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	start = time.Now()
	artifacts, hit, err := r.Render(ctx, l, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit
	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Snapshot loads the current tree from the source.
func (r *Runner) Snapshot(ctx context.Context) (family.Snapshot, error) {
	hooks := observability.Pipeline()
	hooks.OnSnapshotStart(ctx)
	start := time.Now()
	snap, err := LoadSnapshot(ctx, r.Source)
	hooks.OnSnapshotComplete(ctx, len(snap.People), len(snap.Relationships), time.Since(start), err)
	return snap, err
}

// Layout computes the layout of snap, or returns a cached one. The boolean
// reports a cache hit.
func (r *Runner) Layout(ctx context.Context, snap family.Snapshot, opts Options) (layout.Layout, bool, error) {
	lopts := opts.LayoutOptions()
	key := r.layoutKey(snap, opts)

	if !opts.Refresh {
		if data, ok := r.lookup(ctx, key, "layout"); ok {
			var l layout.Layout
			if err := json.Unmarshal(data, &l); err == nil {
				l.Options = layout.NewOptions(lopts...)
				return l, true, nil
			}
			r.logger(opts).Warn("discarding unreadable cached layout", "key", key)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(snap.People))
	start := time.Now()
	l := layout.Compute(snap, lopts...)
	hooks.OnLayoutComplete(ctx, len(l.Nodes), time.Since(start), nil)

	if data, err := json.Marshal(l); err == nil {
		r.store(ctx, key, data, "layout", opts)
	}
	return l, false, nil
}

// Render produces every format in opts.Formats. The boolean is true only
// when all formats came from the cache.
func (r *Runner) Render(ctx context.Context, l layout.Layout, snap family.Snapshot, opts Options) (map[string][]byte, bool, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	layoutKey := r.layoutKey(snap, opts)
	labels := labelHash(snap)
	scene := render.Project(l, snap)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutKey, opts.artifactKeyOpts(format, labels))
		if !opts.Refresh {
			if data, ok := r.lookup(ctx, key, "artifact"); ok {
				artifacts[format] = data
				continue
			}
		}
		allHit = false

		hooks := observability.Pipeline()
		hooks.OnRenderStart(ctx, format)
		start := time.Now()
		data, err := renderFormat(ctx, format, scene, snap, opts)
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
		r.store(ctx, key, data, "artifact", opts)
	}
	return artifacts, allHit, nil
}

func renderFormat(ctx context.Context, format string, scene render.Scene, snap family.Snapshot, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		svgOpts := []sink.SVGOption{sink.WithTitle(opts.Title)}
		if opts.Static || format != FormatSVG {
			svgOpts = append(svgOpts, sink.WithoutInteraction())
		}
		svg := sink.RenderSVG(scene, svgOpts...)
		switch format {
		case FormatPNG:
			return render.ToPNG(ctx, svg, opts.Scale)
		case FormatPDF:
			return render.ToPDF(ctx, svg)
		}
		return svg, nil
	case FormatJSON:
		return sink.RenderJSON(scene, sink.WithJSONStyle("simple"), sink.WithJSONIndent())
	case FormatDOT:
		return []byte(nodelink.ToDOT(snap, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatNodelink:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(snap, nodelink.Options{Detailed: opts.Detailed}))
	}
	return nil, ValidateFormat(format)
}

func (r *Runner) layoutKey(snap family.Snapshot, opts Options) string {
	return r.Keyer.LayoutKey(snap.Hash(), cache.LayoutKeyOpts{
		Options: layout.NewOptions(opts.LayoutOptions()...).Key(),
	})
}

func (o Options) artifactKeyOpts(format, labels string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Style: "simple", Labels: labels}
	switch format {
	case FormatSVG:
		k.Title, k.Static = o.Title, o.Static
	case FormatPNG:
		k.Title, k.Scale = o.Title, o.Scale
	case FormatPDF:
		k.Title = o.Title
	case FormatDOT, FormatNodelink:
		k.Style, k.Detailed = "", o.Detailed
	}
	return k
}

// labelHash covers the person fields that appear in labels but not in
// [family.Snapshot.Hash].
func labelHash(snap family.Snapshot) string {
	type labelKey struct {
		Maiden, BirthPlace, DeathPlace, MarriagePlace string
	}
	keys := make([]labelKey, len(snap.People))
	for i, p := range snap.People {
		keys[i] = labelKey{p.MaidenName, p.BirthPlace, p.DeathPlace, p.MarriagePlace}
	}
	data, _ := json.Marshal(keys)
	return cache.Hash(data)
}

func (r *Runner) lookup(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, key string, data []byte, keyType string, opts Options) {
	if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
		r.logger(opts).Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
