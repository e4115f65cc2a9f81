// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvaskit

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/canvaskit/backend"
)

// Manager errors.
var (
	// ErrNoTarget is returned by operations that need a render target
	// before CreateTarget has succeeded, or after Close.
	ErrNoTarget = errors.New("canvaskit: no render target")

	// ErrTargetExists is returned by CreateTarget when the manager already
	// owns a live target.
	ErrTargetExists = errors.New("canvaskit: target already created")

	// ErrUnknownBackend is returned when no backend is registered under
	// the requested name.
	ErrUnknownBackend = errors.New("canvaskit: unknown backend")
)

// Handle is an opaque identifier for a live render target. The zero value
// never identifies a target.
type Handle uint64

var handleCounter atomic.Uint64

func nextHandle() Handle { return Handle(handleCounter.Add(1)) }

// Manager owns at most one render target: one backend selection, one canvas
// and, for the software backend, one pixel buffer. A process may hold any
// number of managers; shared engine state is refcounted underneath them.
//
// Manager is not safe for concurrent use. Confine each manager to one
// goroutine, the way a drawing surface is confined to its event loop.
type Manager struct {
	canvas      backend.Canvas
	handle      Handle
	backendName string
	width       uint32
	height      uint32
	colorSpace  backend.ColorSpace
	engineHeld  bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithColorSpace selects the pixel layout of software targets. The default
// is ABGR8888S.
func WithColorSpace(cs backend.ColorSpace) ManagerOption {
	return func(m *Manager) { m.colorSpace = cs }
}

// NewManager creates a manager with no target.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{colorSpace: backend.ABGR8888S}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateTarget creates the manager's render target on the named backend,
// bound to the host surface identified by selector, at width x height
// pixels. It returns an opaque non-zero handle on success.
//
// A manager owns at most one target; call Close before creating another.
// Unknown backend names and zero dimensions fail without allocating.
func (m *Manager) CreateTarget(backendName, selector string, width, height uint32) (Handle, error) {
	if m.canvas != nil {
		return 0, ErrTargetExists
	}
	if width == 0 || height == 0 {
		return 0, fmt.Errorf("%w: %dx%d", backend.ErrInvalidDimensions, width, height)
	}

	if err := engineInit(); err != nil {
		return 0, err
	}
	m.engineHeld = true

	if err := loadDefaultFont(); err != nil {
		// A missing default font does not prevent targeting; text setup
		// can still load fonts explicitly.
		Logger().Warn("default font load failed", "error", err)
	}

	b := backend.Get(backendName)
	if b == nil {
		m.releaseEngine()
		return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, backendName)
	}

	canvas, err := b.NewCanvas(backend.CanvasOptions{
		Selector:   selector,
		Width:      width,
		Height:     height,
		ColorSpace: m.colorSpace,
	})
	if err != nil {
		m.releaseEngine()
		return 0, fmt.Errorf("canvaskit: create %q target: %w", backendName, err)
	}

	m.canvas = canvas
	m.handle = nextHandle()
	m.backendName = backendName
	m.width = width
	m.height = height
	Logger().Debug("target created",
		"backend", backendName, "width", width, "height", height)
	return m.handle, nil
}

// Resize changes the target dimensions. Unchanged dimensions are a no-op.
// In-flight work on the target is synchronized before rebinding. Software
// targets are reallocated and hold no previous content; GL and WebGPU
// targets retarget without reallocation.
func (m *Manager) Resize(width, height uint32) error {
	if m.canvas == nil {
		return ErrNoTarget
	}
	if width == m.width && height == m.height {
		return nil
	}
	if err := m.canvas.Sync(); err != nil {
		return err
	}
	if err := m.canvas.Resize(width, height); err != nil {
		return err
	}
	m.width = width
	m.height = height
	return nil
}

// Clear removes all drawable content from the target. The target itself,
// its buffer and its handles stay bound.
func (m *Manager) Clear() error {
	if m.canvas == nil {
		return ErrNoTarget
	}
	if err := m.canvas.Remove(); err != nil {
		return err
	}
	// The software backend clears on the worker pool; wait so the buffer
	// is blank when the caller next observes it.
	return m.canvas.Sync()
}

// Render returns a live view of the software target's pixel buffer,
// width*height*4 bytes in the manager's color space, premultiplied. The
// slice aliases the target's storage: it is valid until the next Resize or
// Close and must not be retained across them.
//
// GL and WebGPU targets present through the host surface and expose no
// readable buffer; Render returns nil for them, and for a software target
// whose buffer was lost to a failed reallocation.
func (m *Manager) Render() []byte {
	if m.canvas == nil {
		return nil
	}
	if src, ok := m.canvas.(backend.PixelSource); ok {
		return src.Pixels()
	}
	return nil
}

// Size returns the current target dimensions, or zeros without a target.
func (m *Manager) Size() (width, height uint32) {
	if m.canvas == nil {
		return 0, 0
	}
	return m.width, m.height
}

// TargetHandle returns the live target's handle, or zero without one.
func (m *Manager) TargetHandle() Handle {
	if m.canvas == nil {
		return 0
	}
	return m.handle
}

// BackendName returns the live target's backend name ("sw", "gl" or "wg"),
// or "" without a target.
func (m *Manager) BackendName() string {
	if m.canvas == nil {
		return ""
	}
	return m.backendName
}

// Close releases the target and the manager's engine reference. Each
// resource is released exactly once; shared engine state is torn down only
// when the last manager closes. The shared GPU context is not touched —
// tear it down explicitly with Term. Idempotent.
func (m *Manager) Close() error {
	var err error
	if m.canvas != nil {
		err = m.canvas.Close()
		m.canvas = nil
		m.handle = 0
		m.backendName = ""
		m.width = 0
		m.height = 0
	}
	m.releaseEngine()
	return err
}

func (m *Manager) releaseEngine() {
	if m.engineHeld {
		engineTerm()
		m.engineHeld = false
	}
}
