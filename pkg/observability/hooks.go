// Package observability provides hooks for metrics, tracing, and logging.
//
// Hosts register hook implementations at startup; libraries emit events
// through the registered hooks and never depend on a specific backend.
//
// # Hook Categories
//
//   - [PipelineHooks]: document load, layout and render stages.
//   - [EngineHooks]: drag interactions and overlap passes in the engine.
//   - [CacheHooks]: cache hits, misses and writes.
//   - [ServerHooks]: inbound HTTP requests and event-stream subscribers.
//
// # Usage
//
//	observability.Use(observability.NewLogHooks(logger))
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnDragTick(vertexID, corrections, time.Since(start))
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the load/layout/render pipeline.
type PipelineHooks interface {
	OnLoadComplete(ctx context.Context, name string, vertices, edges, warnings int, duration time.Duration, err error)
	OnLayoutComplete(ctx context.Context, name string, parents int, duration time.Duration)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the drag/update orchestrator. The
// engine runs synchronously, so these hooks take no context.
type EngineHooks interface {
	OnDocumentLoaded(name string, generation uint64)
	OnDragStart(vertexID string)
	OnDragTick(vertexID string, corrections int, duration time.Duration)
	OnDragEnd(vertexID string, corrections int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP host.
type ServerHooks interface {
	OnRequest(method, route string, status int, duration time.Duration)
	OnSubscribe(subscriberID string, active int)
	OnUnsubscribe(subscriberID string, active int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration)      {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnDocumentLoaded(string, uint64)       {}
func (NoopEngineHooks) OnDragStart(string)                    {}
func (NoopEngineHooks) OnDragTick(string, int, time.Duration) {}
func (NoopEngineHooks) OnDragEnd(string, int, time.Duration)  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(string, string, int, time.Duration) {}
func (NoopServerHooks) OnSubscribe(string, int)                      {}
func (NoopServerHooks) OnUnsubscribe(string, int)                    {}

// =============================================================================
// Registry
// =============================================================================

// slot holds the active implementation of one hook category. Reads are
// lock-free so hot paths such as drag ticks pay only an atomic load.
type slot[T any] struct {
	p    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return s.noop
}

func (s *slot[T]) set(h T) { s.p.Store(&h) }

func (s *slot[T]) reset() { s.p.Store(nil) }

var (
	pipelineSlot = slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	engineSlot   = slot[EngineHooks]{noop: NoopEngineHooks{}}
	cacheSlot    = slot[CacheHooks]{noop: NoopCacheHooks{}}
	serverSlot   = slot[ServerHooks]{noop: NoopServerHooks{}}
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetEngineHooks registers engine hooks. A nil h is ignored.
func SetEngineHooks(h EngineHooks) {
	if h != nil {
		engineSlot.set(h)
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetServerHooks registers server hooks. A nil h is ignored.
func SetServerHooks(h ServerHooks) {
	if h != nil {
		serverSlot.set(h)
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Engine returns the registered engine hooks.
func Engine() EngineHooks { return engineSlot.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// Server returns the registered server hooks.
func Server() ServerHooks { return serverSlot.get() }

// Reset restores the no-op hooks.
func Reset() {
	pipelineSlot.reset()
	engineSlot.reset()
	cacheSlot.reset()
	serverSlot.reset()
}

// Use registers every hook category h implements and returns the number
// of categories registered.
func Use(h any) int {
	n := 0
	if p, ok := h.(PipelineHooks); ok {
		SetPipelineHooks(p)
		n++
	}
	if e, ok := h.(EngineHooks); ok {
		SetEngineHooks(e)
		n++
	}
	if c, ok := h.(CacheHooks); ok {
		SetCacheHooks(c)
		n++
	}
	if s, ok := h.(ServerHooks); ok {
		SetServerHooks(s)
		n++
	}
	return n
}
