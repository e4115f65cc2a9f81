// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogl

package canvaskit

import (
	// Registers the "gl" backend. Exclude with the nogl build tag.
	_ "github.com/gogpu/canvaskit/backend/gl"
)
