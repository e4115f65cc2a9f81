// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvaskit manages render targets for host drawing surfaces
// across three backends: a software pixel buffer ("sw"), a GL context
// ("gl") and a WebGPU surface on a process-wide shared device ("wg").
//
// # Boundary lifecycle
//
//	// Drive GPU device acquisition; non-blocking, call until settled.
//	for canvaskit.Init() == gpu.Pending {
//		// yield to the event loop
//	}
//
//	m := canvaskit.NewManager()
//	handle, err := m.CreateTarget("sw", "#canvas", 800, 600)
//	if err != nil {
//		// handle it
//	}
//	defer m.Close()
//
//	pixels := m.Render() // live ABGR8888 premultiplied view, sw only
//
//	canvaskit.Term() // release the shared GPU context
//
// Each Manager owns at most one target. Shared engine state (worker pool,
// font registry) is refcounted across managers; the shared GPU context is
// torn down only by an explicit Term.
//
// Backend availability is fixed at build time: the software backend is
// always present, the nogl and nowebgpu build tags exclude the other two.
// Without the WebGPU backend, Init reports ready immediately.
package canvaskit
