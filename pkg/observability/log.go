package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline and cache events to a logger at debug
// level. It implements both PipelineHooks and CacheHooks.
type LogPipelineHooks struct {
	Logger *log.Logger
}

func (h LogPipelineHooks) OnSnapshotStart(context.Context) {}

func (h LogPipelineHooks) OnSnapshotComplete(_ context.Context, people, rels int, d time.Duration, err error) {
	h.Logger.Debug("snapshot loaded", "people", people, "relationships", rels, "took", d, "err", err)
}

func (h LogPipelineHooks) OnLayoutStart(context.Context, int) {}

func (h LogPipelineHooks) OnLayoutComplete(_ context.Context, nodes int, d time.Duration, err error) {
	h.Logger.Debug("layout computed", "nodes", nodes, "took", d, "err", err)
}

func (h LogPipelineHooks) OnRenderStart(context.Context, string) {}

func (h LogPipelineHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.Logger.Debug("rendered", "format", format, "bytes", size, "took", d, "err", err)
}

func (h LogPipelineHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogPipelineHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogPipelineHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ PipelineHooks = LogPipelineHooks{}
	_ CacheHooks    = LogPipelineHooks{}
)
