// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvaskit

import (
	"errors"
	"testing"

	"github.com/gogpu/canvaskit/backend"
)

func newTestTarget(t *testing.T, width, height uint32) *Manager {
	t.Helper()
	m := NewManager()
	handle, err := m.CreateTarget(backend.BackendSoftware, "#canvas", width, height)
	if err != nil {
		t.Fatalf("CreateTarget: %v", err)
	}
	if handle == 0 {
		t.Fatal("CreateTarget returned zero handle")
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestCreateTargetSoftware(t *testing.T) {
	m := newTestTarget(t, 800, 600)

	if got := m.BackendName(); got != "sw" {
		t.Errorf("BackendName() = %q, want %q", got, "sw")
	}
	w, h := m.Size()
	if w != 800 || h != 600 {
		t.Errorf("Size() = %dx%d, want 800x600", w, h)
	}
	if m.TargetHandle() == 0 {
		t.Error("TargetHandle() = 0, want non-zero")
	}
	if got := len(m.Render()); got != 800*600*4 {
		t.Errorf("len(Render()) = %d, want %d", got, 800*600*4)
	}
}

func TestCreateTargetHandlesAreUnique(t *testing.T) {
	m1 := newTestTarget(t, 100, 100)
	m2 := newTestTarget(t, 100, 100)
	if m1.TargetHandle() == m2.TargetHandle() {
		t.Fatalf("both targets share handle %d", m1.TargetHandle())
	}
}

func TestCreateTargetRejectsSecond(t *testing.T) {
	m := newTestTarget(t, 100, 100)
	if _, err := m.CreateTarget(backend.BackendSoftware, "#other", 50, 50); !errors.Is(err, ErrTargetExists) {
		t.Fatalf("second CreateTarget err = %v, want ErrTargetExists", err)
	}
	// The first target must be unharmed.
	if w, h := m.Size(); w != 100 || h != 100 {
		t.Errorf("Size() = %dx%d after rejected create, want 100x100", w, h)
	}
}

func TestCreateTargetUnknownBackend(t *testing.T) {
	m := NewManager()
	defer m.Close()
	handle, err := m.CreateTarget("vk", "#canvas", 100, 100)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("err = %v, want ErrUnknownBackend", err)
	}
	if handle != 0 {
		t.Errorf("handle = %d, want 0", handle)
	}
	if m.TargetHandle() != 0 {
		t.Error("manager holds a target after failed create")
	}
}

func TestCreateTargetZeroDimensions(t *testing.T) {
	m := NewManager()
	defer m.Close()
	for _, dims := range [][2]uint32{{0, 100}, {100, 0}, {0, 0}} {
		handle, err := m.CreateTarget(backend.BackendSoftware, "#canvas", dims[0], dims[1])
		if !errors.Is(err, backend.ErrInvalidDimensions) {
			t.Errorf("dims %v: err = %v, want ErrInvalidDimensions", dims, err)
		}
		if handle != 0 {
			t.Errorf("dims %v: handle = %d, want 0", dims, handle)
		}
	}
}

func TestOperationsWithoutTarget(t *testing.T) {
	m := NewManager()

	if err := m.Resize(10, 10); !errors.Is(err, ErrNoTarget) {
		t.Errorf("Resize err = %v, want ErrNoTarget", err)
	}
	if err := m.Clear(); !errors.Is(err, ErrNoTarget) {
		t.Errorf("Clear err = %v, want ErrNoTarget", err)
	}
	if got := m.Render(); got != nil {
		t.Errorf("Render() = %v, want nil", got)
	}
	if w, h := m.Size(); w != 0 || h != 0 {
		t.Errorf("Size() = %dx%d, want 0x0", w, h)
	}
	if m.TargetHandle() != 0 {
		t.Error("TargetHandle() != 0 without target")
	}
	if m.BackendName() != "" {
		t.Errorf("BackendName() = %q, want empty", m.BackendName())
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close without target: %v", err)
	}
}

func TestResize(t *testing.T) {
	m := newTestTarget(t, 100, 100)

	if err := m.Resize(200, 150); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := m.Size(); w != 200 || h != 150 {
		t.Errorf("Size() = %dx%d, want 200x150", w, h)
	}
	if got := len(m.Render()); got != 200*150*4 {
		t.Errorf("len(Render()) = %d after resize, want %d", got, 200*150*4)
	}
}

func TestResizeSameDimensionsKeepsBuffer(t *testing.T) {
	m := newTestTarget(t, 100, 100)

	before := m.Render()
	before[0] = 0xff
	if err := m.Resize(100, 100); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	after := m.Render()
	if after[0] != 0xff {
		t.Error("same-size resize replaced the buffer")
	}
}

func TestResizeInvalidDimensions(t *testing.T) {
	m := newTestTarget(t, 100, 100)
	if err := m.Resize(0, 100); !errors.Is(err, backend.ErrInvalidDimensions) {
		t.Fatalf("Resize(0, 100) err = %v, want ErrInvalidDimensions", err)
	}
	if w, h := m.Size(); w != 100 || h != 100 {
		t.Errorf("Size() = %dx%d after failed resize, want 100x100", w, h)
	}
}

func TestClearZeroesPixels(t *testing.T) {
	m := newTestTarget(t, 64, 64)

	buf := m.Render()
	for i := range buf {
		buf[i] = 0xab
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	buf = m.Render()
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("buf[%d] = %#x after Clear, want 0", i, b)
		}
	}
}

func TestRenderAliasesTargetBuffer(t *testing.T) {
	m := newTestTarget(t, 32, 32)
	a := m.Render()
	b := m.Render()
	a[5] = 0x7f
	if b[5] != 0x7f {
		t.Error("Render() views do not alias the same storage")
	}
}

func TestCloseIdempotent(t *testing.T) {
	m := NewManager()
	if _, err := m.CreateTarget(backend.BackendSoftware, "#canvas", 10, 10); err != nil {
		t.Fatalf("CreateTarget: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if m.TargetHandle() != 0 || m.BackendName() != "" {
		t.Error("manager still reports a target after Close")
	}
	if m.Render() != nil {
		t.Error("Render() != nil after Close")
	}
}

func TestCreateAfterClose(t *testing.T) {
	m := NewManager()
	if _, err := m.CreateTarget(backend.BackendSoftware, "#canvas", 10, 10); err != nil {
		t.Fatalf("CreateTarget: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	handle, err := m.CreateTarget(backend.BackendSoftware, "#canvas", 20, 20)
	if err != nil {
		t.Fatalf("CreateTarget after Close: %v", err)
	}
	if handle == 0 {
		t.Fatal("zero handle after re-create")
	}
	defer m.Close()
	if w, h := m.Size(); w != 20 || h != 20 {
		t.Errorf("Size() = %dx%d, want 20x20", w, h)
	}
}

func TestWithColorSpace(t *testing.T) {
	m := NewManager(WithColorSpace(backend.ARGB8888S))
	defer m.Close()
	if _, err := m.CreateTarget(backend.BackendSoftware, "#canvas", 8, 8); err != nil {
		t.Fatalf("CreateTarget: %v", err)
	}
	if got := len(m.Render()); got != 8*8*4 {
		t.Errorf("len(Render()) = %d, want %d", got, 8*8*4)
	}
}
