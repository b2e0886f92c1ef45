package engine

import "github.com/go-gl/mathgl/mgl32"

// Renderer defines the interface for the frame's draw stage
type Renderer interface {
	// Render draws one frame as seen through view
	Render(view mgl32.Mat4) error

	// Resize updates the viewport and projection for a new framebuffer size
	Resize(width, height int) error

	// Close releases GPU resources
	Close()
}
