package engine

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"flycam/pkg/controls"
)

// glfwKeys maps binding key names onto GLFW key codes
var glfwKeys = func() map[string]glfw.Key {
	keys := map[string]glfw.Key{
		"up":            glfw.KeyUp,
		"down":          glfw.KeyDown,
		"left":          glfw.KeyLeft,
		"right":         glfw.KeyRight,
		"space":         glfw.KeySpace,
		"enter":         glfw.KeyEnter,
		"tab":           glfw.KeyTab,
		"backspace":     glfw.KeyBackspace,
		"insert":        glfw.KeyInsert,
		"delete":        glfw.KeyDelete,
		"home":          glfw.KeyHome,
		"end":           glfw.KeyEnd,
		"page_up":       glfw.KeyPageUp,
		"page_down":     glfw.KeyPageDown,
		"left_shift":    glfw.KeyLeftShift,
		"right_shift":   glfw.KeyRightShift,
		"left_control":  glfw.KeyLeftControl,
		"right_control": glfw.KeyRightControl,
		"left_alt":      glfw.KeyLeftAlt,
		"right_alt":     glfw.KeyRightAlt,
	}
	// GLFW letter and digit codes are their ASCII values
	for c := 'a'; c <= 'z'; c++ {
		keys[string(c)] = glfw.KeyA + glfw.Key(c-'a')
	}
	for c := '0'; c <= '9'; c++ {
		keys[string(c)] = glfw.Key0 + glfw.Key(c-'0')
	}
	return keys
}()

// InputHandler polls the window's keyboard each frame and collects cursor motion
type InputHandler struct {
	window     *glfw.Window
	bindings   controls.Bindings
	keys       map[string]glfw.Key
	mouse      controls.MouseTracker
	mouseLook  bool
	mouseDelta [2]float32
}

// NewInputHandler resolves every bound key and, with mouseLook, captures the cursor
func NewInputHandler(window *glfw.Window, bindings controls.Bindings, mouseLook bool) (*InputHandler, error) {
	keys := make(map[string]glfw.Key, len(bindings))
	for _, name := range bindings.Keys() {
		key, ok := glfwKeys[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", controls.ErrUnknownKey, name)
		}
		keys[name] = key
	}

	handler := &InputHandler{
		window:    window,
		bindings:  bindings,
		keys:      keys,
		mouseLook: mouseLook,
	}

	if mouseLook {
		handler.Recapture()
		window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
			dx, dy := handler.mouse.Move(x, y)
			handler.mouseDelta[0] += dx
			handler.mouseDelta[1] += dy
		})
	}

	return handler, nil
}

// IsKeyDown reports whether the named key is currently held
func (ih *InputHandler) IsKeyDown(name string) bool {
	key, ok := ih.keys[name]
	if !ok {
		return false
	}
	return ih.window.GetKey(key) == glfw.Press
}

// QuitRequested reports whether Escape is held
func (ih *InputHandler) QuitRequested() bool {
	return ih.window.GetKey(glfw.KeyEscape) == glfw.Press
}

// Apply dispatches held keys to p for a frame of dt seconds
func (ih *InputHandler) Apply(p controls.Processor, dt float32) int {
	return ih.bindings.Dispatch(ih.IsKeyDown, p, dt)
}

// Recapture grabs the cursor again and drops any pending motion
func (ih *InputHandler) Recapture() {
	if !ih.mouseLook {
		return
	}
	ih.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	ih.mouse.Reset()
	ih.mouseDelta = [2]float32{}
}

// MouseDelta returns the cursor offset accumulated since the last call
func (ih *InputHandler) MouseDelta() (float32, float32) {
	dx, dy := ih.mouseDelta[0], ih.mouseDelta[1]
	ih.mouseDelta = [2]float32{}
	return dx, dy
}

// MouseLook reports whether cursor motion steers the camera
func (ih *InputHandler) MouseLook() bool {
	return ih.mouseLook
}
