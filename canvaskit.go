// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvaskit

import "github.com/gogpu/canvaskit/gpu"

// pollHook and termHook connect Init/Term to the shared GPU context. They
// are installed by the WebGPU backend's registration file; builds without
// that backend (nowebgpu tag) leave them nil and need no device.
var (
	pollHook func() gpu.PollResult
	termHook func()
)

// Init advances process-wide GPU device acquisition and reports its state.
// Call it repeatedly (typically once per frame) until it stops returning
// [gpu.Pending]:
//
//   - [gpu.Ready]: the device is available; WebGPU targets may be created.
//   - [gpu.Failed]: acquisition failed permanently. Software and GL targets
//     remain usable.
//   - [gpu.Pending]: a request is still in flight; call Init again.
//
// Init never blocks. Builds without the WebGPU backend return Ready
// immediately.
func Init() gpu.PollResult {
	if pollHook == nil {
		return gpu.Ready
	}
	return pollHook()
}

// Term tears down the shared GPU context acquired through Init: device,
// adapter and instance are released in that order. Idempotent. Live WebGPU
// targets must be closed first.
//
// Term does not affect per-manager engine state; that is refcounted by
// Manager lifetimes.
func Term() {
	if termHook != nil {
		termHook()
	}
}
