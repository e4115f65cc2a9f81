// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import "errors"

// Backend name constants. These are the exact strings accepted by
// Manager.CreateTarget and used for registry lookup.
const (
	// BackendSoftware is the CPU rasterizer backend ("sw").
	// It renders into a caller-visible pixel buffer.
	BackendSoftware = "sw"

	// BackendGL is the OpenGL-accelerated backend ("gl").
	// It presents through a GL context bound to a host drawing surface.
	BackendGL = "gl"

	// BackendWebGPU is the WebGPU-accelerated backend ("wg").
	// It presents through a surface targeting the shared GPU device.
	BackendWebGPU = "wg"
)

// Common backend errors.
var (
	// ErrInvalidDimensions is returned when width or height is zero.
	ErrInvalidDimensions = errors.New("backend: invalid dimensions")

	// ErrCanvasClosed is returned when operating on a closed canvas.
	ErrCanvasClosed = errors.New("backend: canvas closed")

	// ErrNoBuffer is returned by software canvas operations after a
	// failed buffer reallocation. The condition is fatal for the canvas.
	ErrNoBuffer = errors.New("backend: no pixel buffer")
)

// CanvasOptions holds the parameters for creating a canvas.
type CanvasOptions struct {
	// Selector identifies the host drawing surface the canvas binds to.
	// Ignored by the software backend.
	Selector string

	// Width and Height are the initial canvas dimensions in pixels.
	// Both must be greater than zero.
	Width  uint32
	Height uint32

	// ColorSpace is the pixel format of the canvas target.
	// The zero value is ABGR8888S (premultiplied alpha).
	ColorSpace ColorSpace
}

// Canvas is a single render target produced by a Backend.
//
// A Canvas owns its backend-specific resources (pixel buffer, GL context,
// GPU surface) exclusively. It is created by Backend.NewCanvas, rebound by
// Resize, and released exactly once by Close.
//
// Canvas is NOT safe for concurrent use. Each canvas belongs to exactly
// one manager.
type Canvas interface {
	// Sync blocks until all in-flight work targeting the canvas has
	// completed. It must be called before the target resources are
	// replaced (e.g. by Resize).
	Sync() error

	// Resize rebinds the canvas target at the new dimensions.
	// The software backend reallocates its pixel buffer (old content is
	// not preserved); GL and WebGPU backends retarget the existing
	// context or surface without reallocation.
	Resize(width, height uint32) error

	// Remove drops all drawable content from the canvas without
	// releasing the target resources.
	Remove() error

	// Close releases all canvas resources. Idempotent.
	Close() error
}

// PixelSource is implemented by canvases whose target is a caller-readable
// pixel buffer. Pixels returns a zero-copy view of the live buffer,
// width*height*4 bytes, or nil if the buffer has been lost.
//
// Only the software backend implements PixelSource.
type PixelSource interface {
	Pixels() []byte
}

// Backend creates canvases for one rendering backend.
//
// Backends register themselves with Register from an init function,
// typically gated by a build tag when the backend is optional.
type Backend interface {
	// Name returns the backend identifier ("sw", "gl", "wg").
	Name() string

	// NewCanvas creates a canvas bound to the backend's target type.
	// On failure all partially acquired resources are released before
	// the error is returned.
	NewCanvas(opts CanvasOptions) (Canvas, error)
}
