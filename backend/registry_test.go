// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
)

type stubBackend struct {
	name string
}

func (b *stubBackend) Name() string { return b.name }

func (b *stubBackend) NewCanvas(CanvasOptions) (Canvas, error) {
	return nil, ErrInvalidDimensions
}

func TestRegisterAndGet(t *testing.T) {
	Register("stub", func() Backend { return &stubBackend{name: "stub"} })
	t.Cleanup(func() { Unregister("stub") })

	if !IsRegistered("stub") {
		t.Fatal("IsRegistered after Register = false")
	}
	b := Get("stub")
	if b == nil || b.Name() != "stub" {
		t.Fatalf("Get = %v, want stub backend", b)
	}
	if !slices.Contains(Available(), "stub") {
		t.Errorf("Available() = %v, missing stub", Available())
	}
}

func TestGetUnknownReturnsNil(t *testing.T) {
	if b := Get("no-such-backend"); b != nil {
		t.Fatalf("Get of unknown name = %v, want nil", b)
	}
	if IsRegistered("no-such-backend") {
		t.Error("IsRegistered true for unknown name")
	}
}

func TestRegisterReplaces(t *testing.T) {
	Register("stub", func() Backend { return &stubBackend{name: "first"} })
	Register("stub", func() Backend { return &stubBackend{name: "second"} })
	t.Cleanup(func() { Unregister("stub") })

	if got := Get("stub").Name(); got != "second" {
		t.Fatalf("Get after re-register = %q, want %q", got, "second")
	}
}

func TestUnregister(t *testing.T) {
	Register("stub", func() Backend { return &stubBackend{name: "stub"} })
	Unregister("stub")
	if IsRegistered("stub") {
		t.Fatal("backend still registered after Unregister")
	}
}

func TestColorSpace(t *testing.T) {
	for _, cs := range []ColorSpace{ABGR8888S, ARGB8888S} {
		if cs.BytesPerPixel() != 4 {
			t.Errorf("%v BytesPerPixel = %d, want 4", cs, cs.BytesPerPixel())
		}
		if !cs.Premultiplied() {
			t.Errorf("%v not premultiplied", cs)
		}
	}
	if got := ABGR8888S.TextureFormat(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("ABGR8888S format = %v, want RGBA8Unorm", got)
	}
	if got := ARGB8888S.TextureFormat(); got != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("ARGB8888S format = %v, want BGRA8Unorm", got)
	}
	if ABGR8888S.String() != "ABGR8888S" || ARGB8888S.String() != "ARGB8888S" {
		t.Error("ColorSpace String() mismatch")
	}
}
