package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowConfig describes the window and GL context to create.
type WindowConfig struct {
	Width, Height int
	Title         string
	// VSync sets a swap interval of 1 when true.
	VSync bool
	// Hidden keeps the window off screen, for offscreen rendering.
	Hidden bool
}

// Window is a GLFW window with a current OpenGL 4.1 core context.
type Window struct {
	*glfw.Window
}

// NewWindow initializes GLFW, opens a window, makes its context current
// and loads GL entry points. GLFW must run on the main thread, so callers
// lock it with runtime.LockOSThread from an init func before calling.
// Call Close to destroy the window and terminate GLFW.
func NewWindow(cfg WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	w, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	w.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	}

	if err := gl.Init(); err != nil {
		w.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	return &Window{Window: w}, nil
}

// Run calls frame once per iteration until the window is asked to close
// or Escape is pressed. Each iteration polls events, sets the viewport to
// the framebuffer size, runs frame with the seconds elapsed since the
// previous frame, and swaps buffers. A frame error stops the loop.
func (w *Window) Run(frame func(dt float64) error) error {
	last := glfw.GetTime()
	for !w.ShouldClose() {
		glfw.PollEvents()
		if w.GetKey(glfw.KeyEscape) == glfw.Press {
			w.SetShouldClose(true)
		}

		fw, fh := w.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fw), int32(fh))

		now := glfw.GetTime()
		if err := frame(now - last); err != nil {
			return err
		}
		last = now

		w.SwapBuffers()
	}
	return nil
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}
