// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvaskit

import (
	// The software backend is always available.
	_ "github.com/gogpu/canvaskit/backend/software"
)
