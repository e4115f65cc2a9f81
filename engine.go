// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvaskit

import (
	"sync"

	"github.com/gogpu/canvaskit/backend/software"
	"github.com/gogpu/canvaskit/internal/parallel"
)

// Shared engine state is refcounted by the managers that hold it: the first
// CreateTarget brings it up, the last Close tears it down. N managers may be
// live at once; closing one never disturbs the others.
var (
	engineMu   sync.Mutex
	engineRefs int
	enginePool *parallel.WorkerPool
)

// engineInit acquires a reference to the shared engine state, creating it
// on the first acquisition.
func engineInit() error {
	engineMu.Lock()
	defer engineMu.Unlock()

	if engineRefs == 0 {
		enginePool = parallel.NewWorkerPool(0)
		software.SetWorkerPool(enginePool)
		Logger().Debug("engine initialized", "workers", enginePool.Workers())
	}
	engineRefs++
	return nil
}

// engineTerm releases one engine reference. The worker pool and font
// registry are dropped when the count reaches zero.
func engineTerm() {
	engineMu.Lock()
	defer engineMu.Unlock()

	if engineRefs == 0 {
		return
	}
	engineRefs--
	if engineRefs > 0 {
		return
	}

	software.SetWorkerPool(nil)
	enginePool.Close()
	enginePool = nil
	releaseFonts()
	Logger().Debug("engine terminated")
}
