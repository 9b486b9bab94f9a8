// Package observability lets a binary receive events from the pipeline, the
// cache and the HTTP server without those packages importing a metrics or
// tracing backend.
//
// Three hook sets exist, one per event source. Each defaults to a no-op and
// is replaced at startup by main:
//
//	observability.Register(observability.NewLogHooks(logger))
//
// Libraries fetch the current set at the point of use:
//
//	hooks := observability.Pipeline()
//	hooks.OnLayoutStart(ctx, n)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives layout and render events.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, samples int)
	OnLayoutComplete(ctx context.Context, samples int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache events. keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from pkg/api.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	// OnError fires for error responses and recovered panics.
	OnError(ctx context.Context, method, path string, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// slot holds one registered hook set.
type slot[T any] struct {
	mu   sync.RWMutex
	cur  T
	noop T
}

func newSlot[T any](noop T) *slot[T] { return &slot[T]{cur: noop, noop: noop} }

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.noop
	s.mu.Unlock()
}

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks replaces the pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h) }

// SetCacheHooks replaces the cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h) }

// SetHTTPHooks replaces the HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h) }

// Register installs h for every hook set it implements and reports how many
// that was.
func Register(h any) int {
	n := 0
	if p, ok := h.(PipelineHooks); ok {
		SetPipelineHooks(p)
		n++
	}
	if c, ok := h.(CacheHooks); ok {
		SetCacheHooks(c)
		n++
	}
	if x, ok := h.(HTTPHooks); ok {
		SetHTTPHooks(x)
		n++
	}
	return n
}

func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

// Reset restores the no-op hooks.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
