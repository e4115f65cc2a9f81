// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wg implements the "wg" canvas backend: a WebGPU surface
// targeting the process-wide shared GPU device.
//
// The backend does not negotiate a device itself. It requires either the
// shared acquisition context (gpu.Shared) to have reached Ready — drive it
// with canvaskit.Init — or a host-provided device installed with
// SetDeviceProvider.
package wg

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/canvaskit/backend"
	"github.com/gogpu/canvaskit/gpu"
)

// init registers the WebGPU backend on package import.
// Build with the nowebgpu tag to exclude it.
func init() {
	backend.Register(backend.BackendWebGPU, func() backend.Backend {
		return &Backend{}
	})
}

// Package errors.
var (
	// ErrDeviceNotReady is returned when canvas creation runs before
	// device acquisition has completed.
	ErrDeviceNotReady = errors.New("wg: GPU device not ready")

	// ErrNoSurfaceSource is returned when no surface source has been
	// installed.
	ErrNoSurfaceSource = errors.New("wg: no surface source installed")

	// ErrSurfaceCreationFailed is returned when the host cannot provide
	// a surface for the requested selector.
	ErrSurfaceCreationFailed = errors.New("wg: surface creation failed")
)

// Surface is an opaque presentation surface bound to a host drawing
// surface. It is exclusively owned by one canvas and released exactly
// once.
type Surface interface {
	Release()
}

// SurfaceSource creates surfaces bound to host drawing surfaces.
// The host application installs one with SetSurfaceSource before WebGPU
// canvases can be created.
type SurfaceSource interface {
	CreateSurface(inst gpu.Instance, selector string) (Surface, error)
}

var (
	mu       sync.RWMutex
	source   SurfaceSource
	provider gpucontext.DeviceProvider
	acquirer = gpu.Shared
)

// SetSurfaceSource installs the surface source used by canvas creation.
// Pass nil to remove it.
func SetSurfaceSource(s SurfaceSource) {
	mu.Lock()
	defer mu.Unlock()
	source = s
}

// SetDeviceProvider installs a host-provided device. When set, canvas
// creation uses the host's already-negotiated device instead of the
// shared acquisition context, and no polling is required.
//
// Pass nil to return to the shared context.
func SetDeviceProvider(p gpucontext.DeviceProvider) {
	mu.Lock()
	defer mu.Unlock()
	provider = p
}

// SetAcquisitionContext substitutes the acquisition context consulted by
// canvas creation. Intended for tests; passing nil restores the shared
// context.
func SetAcquisitionContext(c *gpu.Context) {
	mu.Lock()
	defer mu.Unlock()
	if c == nil {
		acquirer = gpu.Shared
		return
	}
	acquirer = func() *gpu.Context { return c }
}

// AcquisitionContext returns the context consulted by canvas creation,
// gpu.Shared unless a test substituted it.
func AcquisitionContext() *gpu.Context {
	mu.RLock()
	defer mu.RUnlock()
	return acquirer()
}

func surfaceSource() SurfaceSource {
	mu.RLock()
	defer mu.RUnlock()
	return source
}

func deviceProvider() gpucontext.DeviceProvider {
	mu.RLock()
	defer mu.RUnlock()
	return provider
}

// Backend creates WebGPU canvases.
type Backend struct{}

// Name returns "wg".
func (*Backend) Name() string { return backend.BackendWebGPU }

// NewCanvas creates a surface bound to the selector and a canvas
// targeting the shared device, instance and surface at the given
// dimensions. The surface is released if any later step fails.
func (*Backend) NewCanvas(opts backend.CanvasOptions) (backend.Canvas, error) {
	if opts.Width == 0 || opts.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", backend.ErrInvalidDimensions, opts.Width, opts.Height)
	}

	ctx := AcquisitionContext()
	format := opts.ColorSpace.TextureFormat()

	if p := deviceProvider(); p != nil {
		// Host-shared device: the host already negotiated it.
		if p.Device() == nil {
			return nil, ErrDeviceNotReady
		}
		if f := p.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			format = f
		}
	} else if !ctx.Ready() {
		return nil, ErrDeviceNotReady
	}

	src := surfaceSource()
	if src == nil {
		return nil, ErrNoSurfaceSource
	}

	surface, err := src.CreateSurface(ctx.Instance(), opts.Selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceCreationFailed, err)
	}

	return &Canvas{
		ctx:     ctx,
		surface: surface,
		width:   opts.Width,
		height:  opts.Height,
		format:  format,
	}, nil
}

// Canvas is a WebGPU render target. It presents through its surface and
// exposes no readable pixel buffer. The device, adapter and instance are
// shared process-wide state the canvas never owns; only the surface is
// exclusively owned by the canvas.
type Canvas struct {
	ctx     *gpu.Context
	surface Surface

	width  uint32
	height uint32
	format gputypes.TextureFormat

	closed bool
}

// Width returns the configured target width in pixels.
func (c *Canvas) Width() uint32 { return c.width }

// Height returns the configured target height in pixels.
func (c *Canvas) Height() uint32 { return c.height }

// Format returns the surface texture format.
func (c *Canvas) Format() gputypes.TextureFormat { return c.format }

// Sync is a no-op for WebGPU canvases: submission ordering against the
// surface is handled by the queue.
func (c *Canvas) Sync() error {
	if c.closed {
		return backend.ErrCanvasClosed
	}
	return nil
}

// Resize retargets the device/instance/surface configuration at the new
// dimensions. No reallocation is involved.
func (c *Canvas) Resize(width, height uint32) error {
	if c.closed {
		return backend.ErrCanvasClosed
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", backend.ErrInvalidDimensions, width, height)
	}
	c.width = width
	c.height = height
	return nil
}

// Remove drops all drawable content. The surface is retained.
func (c *Canvas) Remove() error {
	if c.closed {
		return backend.ErrCanvasClosed
	}
	return nil
}

// Close releases the surface. The shared device, adapter and instance are
// left untouched; they belong to the acquisition context. Idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.surface.Release()
	c.surface = nil
	c.closed = true
	return nil
}
