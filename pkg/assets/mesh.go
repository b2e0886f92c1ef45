// Package assets holds the static geometry, image decoding and shader text used by the
// viewer. Nothing here touches the GL context.
package assets

import (
	"errors"
	"fmt"
	"strings"
)

// FloatsPerVertex is the interleaved layout: position xyz followed by texture uv
const FloatsPerVertex = 5

// ErrUnknownMesh is returned by MeshByName for unsupported names
var ErrUnknownMesh = errors.New("unknown mesh")

// Mesh is indexed, interleaved vertex data ready for a single VBO/EBO pair
type Mesh struct {
	Name     string
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices in the buffer
func (m Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

// Validate checks that the buffers are well formed and every index is in range
func (m Mesh) Validate() error {
	if len(m.Vertices) == 0 || len(m.Vertices)%FloatsPerVertex != 0 {
		return fmt.Errorf("mesh %s: vertex buffer length %d is not a multiple of %d", m.Name, len(m.Vertices), FloatsPerVertex)
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %s: index count %d is not a whole number of triangles", m.Name, len(m.Indices))
	}
	count := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= count {
			return fmt.Errorf("mesh %s: index %d at %d out of range", m.Name, idx, i)
		}
	}
	return nil
}

// Pyramid is a square-based pyramid whose faces share one texture atlas
func Pyramid() Mesh {
	return Mesh{
		Name: "pyramid",
		Vertices: []float32{
			-0.5, -0.5, 0.5, 0.00667, 0.36121,
			0.5, -0.5, 0.5, 0.65833, 0.36121,
			-0.5, -0.5, -0.5, 0.00667, 0.00000,
			0.5, -0.5, -0.5, 0.65833, 0.00000,
			0.0, 0.5, 0.0, 0.33167, 0.67739,
			0.5, -0.5, -0.5, 0.99000, 0.67923,
			-0.5, -0.5, -0.5, 0.66167, 0.99632,
			-0.5, -0.5, 0.5, 0.00167, 0.99632,
		},
		Indices: []uint32{
			0, 1, 2,
			2, 3, 1,
			0, 1, 4,
			1, 5, 4,
			5, 6, 4,
			6, 7, 4,
		},
	}
}

// Rectangle is a unit quad in the XY plane
func Rectangle() Mesh {
	return Mesh{
		Name: "rectangle",
		Vertices: []float32{
			0.5, 0.5, 0.0, 1.0, 1.0,
			0.5, -0.5, 0.0, 1.0, 0.0,
			-0.5, -0.5, 0.0, 0.0, 0.0,
			-0.5, 0.5, 0.0, 0.0, 1.0,
		},
		Indices: []uint32{
			0, 1, 3,
			1, 2, 3,
		},
	}
}

// MeshByName returns the built-in mesh with the given name
func MeshByName(name string) (Mesh, error) {
	switch strings.ToLower(name) {
	case "pyramid":
		return Pyramid(), nil
	case "rectangle":
		return Rectangle(), nil
	}
	return Mesh{}, fmt.Errorf("%w: %q", ErrUnknownMesh, name)
}
