// Package observability provides hooks for metrics and tracing.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about identification, cache operations, and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Library packages (identify, cache, render) never log; they emit hooks and
// leave presentation to the caller. The prom subpackage provides a Prometheus
// implementation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    reg := prom.New()
//	    observability.SetIdentifyHooks(reg)
//	    observability.SetCacheHooks(reg)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Identify().OnIdentifyStart(ctx, x, len(targets))
//	// ... identify ...
//	observability.Identify().OnIdentifyComplete(ctx, x, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Identify Hooks
// =============================================================================

// IdentifyHooks receives events from model construction and identification.
type IdentifyHooks interface {
	// OnNormalize reports the topological permutation (order[new] = old).
	OnNormalize(ctx context.Context, order []int)

	// OnDecompose reports a c-component decomposition of a node set.
	OnDecompose(ctx context.Context, nodes, components int)

	// OnFactor reports a built Tian factor.
	OnFactor(ctx context.Context, size, terms int)

	// Identification events
	OnIdentifyStart(ctx context.Context, x, targets int)
	OnIdentifyComplete(ctx context.Context, x int, duration time.Duration, err error)
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
// Render Hooks
// =============================================================================

// RenderHooks receives events from diagram rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopIdentifyHooks is a no-op implementation of IdentifyHooks.
type NoopIdentifyHooks struct{}

func (NoopIdentifyHooks) OnNormalize(context.Context, []int)                            {}
func (NoopIdentifyHooks) OnDecompose(context.Context, int, int)                         {}
func (NoopIdentifyHooks) OnFactor(context.Context, int, int)                            {}
func (NoopIdentifyHooks) OnIdentifyStart(context.Context, int, int)                     {}
func (NoopIdentifyHooks) OnIdentifyComplete(context.Context, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                               {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	identifyHooks IdentifyHooks = NoopIdentifyHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	renderHooks   RenderHooks   = NoopRenderHooks{}
	hooksMu       sync.RWMutex
)

// SetIdentifyHooks registers custom identification hooks.
// This should be called once at application startup before any models are built.
func SetIdentifyHooks(h IdentifyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		identifyHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Identify returns the registered identification hooks.
func Identify() IdentifyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return identifyHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	identifyHooks = NoopIdentifyHooks{}
	cacheHooks = NoopCacheHooks{}
	renderHooks = NoopRenderHooks{}
}
