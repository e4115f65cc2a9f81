// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gl implements the "gl" canvas backend: an OpenGL context bound
// to a host drawing surface, presenting through the host compositor.
package gl

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/canvaskit/backend"
)

// init registers the GL backend on package import.
// Build with the nogl tag to exclude it.
func init() {
	backend.Register(backend.BackendGL, func() backend.Backend {
		return &Backend{}
	})
}

// Package errors.
var (
	// ErrContextCreationFailed is returned when the host cannot provide
	// a GL context for the requested surface.
	ErrContextCreationFailed = errors.New("gl: context creation failed")
)

// ContextAttributes is the fixed attribute set every canvas context is
// created with: alpha channel on, no depth or stencil, premultiplied
// alpha, context version 2.0, extensions enabled, and no failure on
// performance caveats.
type ContextAttributes struct {
	Alpha                        bool
	Depth                        bool
	Stencil                      bool
	PremultipliedAlpha           bool
	FailIfMajorPerformanceCaveat bool
	MajorVersion                 int
	MinorVersion                 int
	EnableExtensionsByDefault    bool
}

// DefaultContextAttributes returns the attribute set used for canvas
// contexts.
func DefaultContextAttributes() ContextAttributes {
	return ContextAttributes{
		Alpha:                     true,
		PremultipliedAlpha:        true,
		MajorVersion:              2,
		MinorVersion:              0,
		EnableExtensionsByDefault: true,
	}
}

// Context is a live GL context. It is exclusively owned by one canvas and
// destroyed exactly once.
type Context interface {
	// MakeCurrent binds the context to the calling goroutine.
	MakeCurrent() error

	// Finish blocks until all submitted GL commands have completed.
	Finish()

	// Viewport retargets the context's drawing area to the given
	// dimensions.
	Viewport(width, height uint32)

	// ClearSurface removes all drawn content from the surface.
	ClearSurface()

	// Destroy releases the context.
	Destroy()
}

// ContextSource creates GL contexts bound to host drawing surfaces.
// The default source drives goxjs/glfw; hosts with their own windowing
// stack install a replacement with SetContextSource, and tests inject
// fakes the same way.
type ContextSource interface {
	CreateContext(selector string, width, height uint32, attrs ContextAttributes) (Context, error)
}

var (
	sourceMu sync.RWMutex
	source   ContextSource = &glfwSource{}
)

// SetContextSource installs the context source used by canvas creation.
// Passing nil restores the default goxjs/glfw source.
func SetContextSource(s ContextSource) {
	sourceMu.Lock()
	defer sourceMu.Unlock()
	if s == nil {
		s = &glfwSource{}
	}
	source = s
}

func contextSource() ContextSource {
	sourceMu.RLock()
	defer sourceMu.RUnlock()
	return source
}

// Backend creates GL canvases.
type Backend struct{}

// Name returns "gl".
func (*Backend) Name() string { return backend.BackendGL }

// NewCanvas creates a GL context bound to the selector with the fixed
// attribute set, makes it current, and binds a canvas to it at the given
// dimensions. The context is destroyed if any later step fails.
func (*Backend) NewCanvas(opts backend.CanvasOptions) (backend.Canvas, error) {
	if opts.Width == 0 || opts.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", backend.ErrInvalidDimensions, opts.Width, opts.Height)
	}

	ctx, err := contextSource().CreateContext(opts.Selector, opts.Width, opts.Height, DefaultContextAttributes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextCreationFailed, err)
	}

	if err := ctx.MakeCurrent(); err != nil {
		ctx.Destroy()
		return nil, fmt.Errorf("%w: %v", ErrContextCreationFailed, err)
	}
	ctx.Viewport(opts.Width, opts.Height)

	return &Canvas{ctx: ctx}, nil
}

// Canvas is a GL render target. It presents directly through the host
// compositor and exposes no readable pixel buffer.
type Canvas struct {
	ctx    Context
	closed bool
}

// Sync blocks until in-flight GL commands targeting the canvas complete.
func (c *Canvas) Sync() error {
	if c.closed {
		return backend.ErrCanvasClosed
	}
	c.ctx.Finish()
	return nil
}

// Resize retargets the existing context to the new dimensions.
// No reallocation is involved and no failure path exists beyond misuse.
func (c *Canvas) Resize(width, height uint32) error {
	if c.closed {
		return backend.ErrCanvasClosed
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", backend.ErrInvalidDimensions, width, height)
	}
	c.ctx.Viewport(width, height)
	return nil
}

// Remove clears all drawn content. The context itself is retained.
func (c *Canvas) Remove() error {
	if c.closed {
		return backend.ErrCanvasClosed
	}
	c.ctx.ClearSurface()
	return nil
}

// Close destroys the GL context. Idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.ctx.Destroy()
	c.ctx = nil
	c.closed = true
	return nil
}
