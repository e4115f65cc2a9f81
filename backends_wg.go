// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nowebgpu

package canvaskit

import (
	// Registers the "wg" backend. Exclude with the nowebgpu build tag.
	"github.com/gogpu/canvaskit/backend/wg"
	"github.com/gogpu/canvaskit/gpu"
)

// With the WebGPU backend compiled in, Init and Term drive the acquisition
// context the backend creates canvases against.
func init() {
	pollHook = func() gpu.PollResult { return wg.AcquisitionContext().Poll() }
	termHook = func() { wg.AcquisitionContext().Term() }
}
