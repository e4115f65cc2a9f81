// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvaskit

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontName is the registry name of the font loaded automatically
// at target creation.
const DefaultFontName = "default"

// DefaultFontSize is the text size, in points, used when a caller does not
// specify one.
const DefaultFontSize = 10

var (
	fontMu sync.RWMutex
	fonts  map[string]*font.Font
)

// LoadFont parses TTF/OTF data and registers it under name. Loading a name
// that is already registered replaces the previous entry. The parsed font
// is read-only and safe for concurrent use.
func LoadFont(name string, data []byte) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("font %q: %w", name, err)
	}

	fontMu.Lock()
	defer fontMu.Unlock()
	if fonts == nil {
		fonts = make(map[string]*font.Font)
	}
	fonts[name] = face.Font
	return nil
}

// Font returns the font registered under name, or nil if none is.
func Font(name string) *font.Font {
	fontMu.RLock()
	defer fontMu.RUnlock()
	return fonts[name]
}

// loadDefaultFont registers the embedded Go Regular face under
// DefaultFontName. Idempotent: an already-registered default is kept.
func loadDefaultFont() error {
	fontMu.RLock()
	_, ok := fonts[DefaultFontName]
	fontMu.RUnlock()
	if ok {
		return nil
	}
	return LoadFont(DefaultFontName, goregular.TTF)
}

// releaseFonts drops every registered font. Called when the last manager
// releases the shared engine state.
func releaseFonts() {
	fontMu.Lock()
	defer fontMu.Unlock()
	fonts = nil
}
