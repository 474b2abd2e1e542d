package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook category by writing debug-level log
// lines. Failures are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger, prefixed "obs".
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

func (h *LogHooks) OnLoadComplete(_ context.Context, name string, vertices, edges, warnings int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("load failed", "document", name, "error", err)
		return
	}
	h.logger.Debug("load", "document", name, "vertices", vertices, "edges", edges, "warnings", warnings, "duration", d)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, name string, parents int, d time.Duration) {
	h.logger.Debug("layout", "document", name, "parents", parents, "duration", d)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render", "formats", formats, "duration", d)
}

func (h *LogHooks) OnDocumentLoaded(name string, generation uint64) {
	h.logger.Debug("document loaded", "document", name, "generation", generation)
}

func (h *LogHooks) OnDragStart(vertexID string) {
	h.logger.Debug("drag start", "vertex", vertexID)
}

func (h *LogHooks) OnDragTick(vertexID string, corrections int, d time.Duration) {
	h.logger.Debug("drag tick", "vertex", vertexID, "corrections", corrections, "duration", d)
}

func (h *LogHooks) OnDragEnd(vertexID string, corrections int, d time.Duration) {
	h.logger.Debug("drag end", "vertex", vertexID, "corrections", corrections, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "stage", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "stage", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "stage", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(method, route string, status int, d time.Duration) {
	h.logger.Debug("request", "method", method, "route", route, "status", status, "duration", d)
}

func (h *LogHooks) OnSubscribe(subscriberID string, active int) {
	h.logger.Debug("subscribe", "subscriber", subscriberID, "active", active)
}

func (h *LogHooks) OnUnsubscribe(subscriberID string, active int) {
	h.logger.Debug("unsubscribe", "subscriber", subscriberID, "active", active)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ EngineHooks   = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
