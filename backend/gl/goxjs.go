package gl

import (
	"fmt"
	"sync"

	"github.com/goxjs/gl"
	"github.com/goxjs/glfw"
)

// glfwSource is the default ContextSource, creating contexts through
// goxjs/glfw. On desktop builds this opens a native GL window; on js
// builds it binds the canvas element the host page provides.
//
// glfw initialization happens once per process, on first use.
type glfwSource struct {
	initOnce sync.Once
	initErr  error
}

func (s *glfwSource) CreateContext(selector string, width, height uint32, attrs ContextAttributes) (Context, error) {
	s.initOnce.Do(func() {
		s.initErr = glfw.Init(gl.ContextWatcher)
	})
	if s.initErr != nil {
		return nil, fmt.Errorf("glfw init failed: %w", s.initErr)
	}

	// goxjs/glfw exposes only a subset of the attribute surface across
	// desktop and js targets; version and alpha handling follow the
	// platform defaults, which match DefaultContextAttributes on WebGL.
	window, err := glfw.CreateWindow(int(width), int(height), selector, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("window creation failed for %q: %w", selector, err)
	}

	return &glfwContext{window: window}, nil
}

// glfwContext adapts a goxjs/glfw window to the Context interface.
type glfwContext struct {
	window *glfw.Window
}

func (c *glfwContext) MakeCurrent() error {
	c.window.MakeContextCurrent()
	return nil
}

func (c *glfwContext) Finish() {
	gl.Finish()
}

func (c *glfwContext) Viewport(width, height uint32) {
	gl.Viewport(0, 0, int(width), int(height))
}

func (c *glfwContext) ClearSurface() {
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (c *glfwContext) Destroy() {
	c.window.Destroy()
}
