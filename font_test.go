// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvaskit

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadFont(t *testing.T) {
	t.Cleanup(releaseFonts)

	if err := LoadFont("body", goregular.TTF); err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	if Font("body") == nil {
		t.Fatal("Font(\"body\") = nil after load")
	}
	if Font("missing") != nil {
		t.Error("Font returned an entry for an unregistered name")
	}
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	t.Cleanup(releaseFonts)

	if err := LoadFont("broken", []byte("not a font")); err == nil {
		t.Fatal("LoadFont accepted garbage data")
	}
	if Font("broken") != nil {
		t.Error("failed load left a registry entry")
	}
}

func TestLoadFontOverwrites(t *testing.T) {
	t.Cleanup(releaseFonts)

	if err := LoadFont("body", goregular.TTF); err != nil {
		t.Fatalf("first load: %v", err)
	}
	first := Font("body")
	if err := LoadFont("body", goregular.TTF); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if Font("body") == first {
		t.Error("reloading a name kept the previous entry")
	}
}

func TestLoadDefaultFontIdempotent(t *testing.T) {
	t.Cleanup(releaseFonts)

	if err := loadDefaultFont(); err != nil {
		t.Fatalf("loadDefaultFont: %v", err)
	}
	def := Font(DefaultFontName)
	if def == nil {
		t.Fatal("default font not registered")
	}
	if err := loadDefaultFont(); err != nil {
		t.Fatalf("second loadDefaultFont: %v", err)
	}
	if Font(DefaultFontName) != def {
		t.Error("repeated loadDefaultFont re-parsed the default font")
	}
}
