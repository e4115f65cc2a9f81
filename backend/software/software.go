// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software implements the "sw" canvas backend: a CPU rasterizer
// target backed by a caller-visible pixel buffer.
package software

import (
	"fmt"
	"sync"

	"github.com/gogpu/canvaskit/backend"
	"github.com/gogpu/canvaskit/internal/parallel"
)

// init registers the software backend on package import.
// The software backend is always compiled in.
func init() {
	backend.Register(backend.BackendSoftware, func() backend.Backend {
		return New()
	})
}

// Allocator allocates a pixel buffer of the given size in bytes.
// The default allocator never fails; tests substitute one that does to
// exercise out-of-memory paths.
type Allocator func(size int) ([]byte, error)

func defaultAllocator(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// Shared worker pool, installed by the engine while it is live.
// Canvas clears run on the pool when present and inline otherwise.
var (
	poolMu sync.RWMutex
	pool   *parallel.WorkerPool
)

// SetWorkerPool installs the worker pool used for background buffer work.
// Pass nil to detach; canvases then fall back to inline execution.
func SetWorkerPool(p *parallel.WorkerPool) {
	poolMu.Lock()
	defer poolMu.Unlock()
	pool = p
}

func workerPool() *parallel.WorkerPool {
	poolMu.RLock()
	defer poolMu.RUnlock()
	return pool
}

// Option configures a Backend created by New.
type Option func(*Backend)

// WithAllocator substitutes the pixel buffer allocator.
// Passing nil keeps the default.
func WithAllocator(alloc Allocator) Option {
	return func(b *Backend) {
		if alloc != nil {
			b.alloc = alloc
		}
	}
}

// Backend creates software canvases.
type Backend struct {
	alloc Allocator
}

// New creates a software backend.
func New(opts ...Option) *Backend {
	b := &Backend{alloc: defaultAllocator}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns "sw".
func (*Backend) Name() string { return backend.BackendSoftware }

// NewCanvas allocates a canvas and its width*height*4 byte pixel buffer,
// bound with a row stride of width pixels. On allocation failure nothing
// is retained.
func (b *Backend) NewCanvas(opts backend.CanvasOptions) (backend.Canvas, error) {
	if opts.Width == 0 || opts.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", backend.ErrInvalidDimensions, opts.Width, opts.Height)
	}

	size := int(opts.Width) * int(opts.Height) * opts.ColorSpace.BytesPerPixel()
	buf, err := b.alloc(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrNoBuffer, err)
	}

	return &Canvas{
		alloc:      b.alloc,
		buf:        buf,
		width:      opts.Width,
		height:     opts.Height,
		colorSpace: opts.ColorSpace,
	}, nil
}

// Canvas is a software render target. It exclusively owns its pixel
// buffer; the buffer is freed on Close and replaced wholesale on Resize.
//
// Canvas is not safe for concurrent use, but background clears submitted
// to the worker pool are tracked and joined by Sync.
type Canvas struct {
	alloc      Allocator
	buf        []byte
	width      uint32
	height     uint32
	colorSpace backend.ColorSpace

	// pending tracks background work targeting the buffer.
	pending sync.WaitGroup

	closed bool
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() uint32 { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() uint32 { return c.height }

// Stride returns the row stride in pixels. The buffer is tightly packed,
// so the stride equals the width.
func (c *Canvas) Stride() uint32 { return c.width }

// ColorSpace returns the buffer's pixel format.
func (c *Canvas) ColorSpace() backend.ColorSpace { return c.colorSpace }

// Pixels returns a zero-copy view of the live pixel buffer,
// width*height*4 bytes. Returns nil if the buffer has been lost to a
// failed reallocation or the canvas is closed.
func (c *Canvas) Pixels() []byte {
	if c.closed {
		return nil
	}
	return c.buf
}

// Sync blocks until all background work targeting the buffer completes.
func (c *Canvas) Sync() error {
	if c.closed {
		return backend.ErrCanvasClosed
	}
	c.pending.Wait()
	return nil
}

// Resize discards the old pixel buffer and allocates a fresh one at the
// new dimensions. Old content is never preserved. If allocation fails the
// canvas is left without a buffer: the condition is fatal for this canvas
// and Pixels returns nil from then on.
func (c *Canvas) Resize(width, height uint32) error {
	if c.closed {
		return backend.ErrCanvasClosed
	}
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", backend.ErrInvalidDimensions, width, height)
	}

	// Join in-flight work before the buffer it targets goes away.
	c.pending.Wait()

	c.buf = nil
	c.width = width
	c.height = height

	buf, err := c.alloc(int(width) * int(height) * c.colorSpace.BytesPerPixel())
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrNoBuffer, err)
	}
	c.buf = buf
	return nil
}

// Remove clears all drawable content by zeroing the pixel buffer. The
// buffer itself is retained. Large buffers are cleared in row stripes on
// the shared worker pool; Sync joins the stripes.
func (c *Canvas) Remove() error {
	if c.closed {
		return backend.ErrCanvasClosed
	}
	if c.buf == nil {
		return backend.ErrNoBuffer
	}

	p := workerPool()
	if p == nil {
		clear(c.buf)
		return nil
	}

	rowBytes := int(c.width) * c.colorSpace.BytesPerPixel()
	stripes := p.Workers()
	rows := int(c.height)
	if stripes > rows {
		stripes = rows
	}

	buf := c.buf
	per := (rows + stripes - 1) / stripes
	for start := 0; start < rows; start += per {
		end := start + per
		if end > rows {
			end = rows
		}
		lo, hi := start*rowBytes, end*rowBytes
		c.pending.Add(1)
		p.Submit(func() {
			defer c.pending.Done()
			clear(buf[lo:hi])
		})
	}
	return nil
}

// Close joins background work and releases the pixel buffer. Idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.pending.Wait()
	c.buf = nil
	c.closed = true
	return nil
}

// Canvas exposes its buffer to the manager's render operation.
var _ backend.PixelSource = (*Canvas)(nil)
