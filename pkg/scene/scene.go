// Package scene builds the model and projection transforms that sit around the camera's
// view matrix.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"flycam/internal/util"
)

// Placement positions the single drawn object in the world
type Placement struct {
	Position  mgl32.Vec3
	RotationY float32 // degrees about world up
}

// Lens describes a perspective projection
type Lens struct {
	FieldOfView float32 // vertical, degrees
	Near        float32
	Far         float32
}

// Model returns translate(position) * rotateY(rotation)
func (p Placement) Model() mgl32.Mat4 {
	translation := mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())
	rotation := mgl32.HomogRotate3DY(mgl32.DegToRad(p.RotationY))
	return translation.Mul4(rotation)
}

// Projection returns the perspective matrix for a framebuffer of the given size
func (l Lens) Projection(width, height int) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(l.FieldOfView), util.AspectRatio(width, height), l.Near, l.Far)
}

// ClipPosition maps a model-space point through model, view and projection and
// returns normalized device coordinates.
func ClipPosition(model, view, projection mgl32.Mat4, point mgl32.Vec3) mgl32.Vec3 {
	clip := projection.Mul4(view).Mul4(model).Mul4x1(point.Vec4(1))
	if clip.W() == 0 {
		return clip.Vec3()
	}
	return clip.Vec3().Mul(1 / clip.W())
}

// OnScreen reports whether normalized device coordinates fall inside the view volume
func OnScreen(ndc mgl32.Vec3) bool {
	for _, c := range ndc {
		if util.Clamp(c, -1, 1) != c {
			return false
		}
	}
	return true
}
