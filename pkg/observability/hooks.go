// Package observability provides hooks for metrics, tracing, and logging.
//
// The pipeline reports the start and end of each stage (load, rasterize,
// split, pack) to the registered [StageHooks]. Nothing is registered by
// default, so the library stays free of any particular metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStageHooks(&myStageHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Stages().OnStageStart(ctx, observability.StageRasterize)
//	// ... render images ...
//	observability.Stages().OnStageComplete(ctx, observability.StageRasterize, created, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names reported to hooks.
const (
	StageLoad      = "load"
	StageRasterize = "rasterize"
	StageSplit     = "split"
	StagePack      = "pack"
)

// StageHooks receives events from the preparation pipeline.
type StageHooks interface {
	// OnStageStart is called before a stage begins.
	OnStageStart(ctx context.Context, stage string)

	// OnStageComplete is called when a stage ends. items is the number of
	// samples loaded, images written, files split or entries archived.
	OnStageComplete(ctx context.Context, stage string, items int, duration time.Duration, err error)
}

// NoopStageHooks is a no-op implementation of StageHooks.
type NoopStageHooks struct{}

func (NoopStageHooks) OnStageStart(context.Context, string)                               {}
func (NoopStageHooks) OnStageComplete(context.Context, string, int, time.Duration, error) {}

var (
	stageHooks StageHooks = NoopStageHooks{}
	hooksMu    sync.RWMutex
)

// SetStageHooks registers custom stage hooks. A nil h is ignored.
// This should be called once at application startup before any pipeline operations.
func SetStageHooks(h StageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stageHooks = h
	}
}

// Stages returns the registered stage hooks.
func Stages() StageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stageHooks
}

// Reset restores the no-op hooks.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	stageHooks = NoopStageHooks{}
}
