// Package observability provides hooks for metrics, tracing, and logging.
//
// The layout core emits events through these hooks without depending on any
// particular backend. Consumers register hooks once at startup; every hook
// defaults to a no-op.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetRegistryHooks(&myRegistryHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnResize("conversation", 40, 40, true)
package observability

import "sync"

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout strategies.
type LayoutHooks interface {
	// OnCreate records a layout instantiation; err is nil on success.
	OnCreate(kind string, canvases int, err error)

	// OnClear records a repaint of all canvases owned by a layout.
	OnClear(kind string, err error)

	// OnResize records a resize request. applied is the height after
	// clamping; committed is false when policy rejected the new geometry.
	OnResize(kind string, requested, applied int, committed bool)
}

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from the canvas registry.
type RegistryHooks interface {
	// OnInsert records canvases added to the registry and the new size.
	OnInsert(added, size int)

	// OnCapacityExceeded records an insertion refused at capacity.
	OnCapacityExceeded(requested, capacity int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnCreate(string, int, error)    {}
func (NoopLayoutHooks) OnClear(string, error)           {}
func (NoopLayoutHooks) OnResize(string, int, int, bool) {}

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnInsert(int, int)           {}
func (NoopRegistryHooks) OnCapacityExceeded(int, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks   LayoutHooks   = NoopLayoutHooks{}
	registryHooks RegistryHooks = NoopRegistryHooks{}
	hooksMu       sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout is created.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetRegistryHooks registers custom registry hooks.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	registryHooks = NoopRegistryHooks{}
}
