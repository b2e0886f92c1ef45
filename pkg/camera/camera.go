// Package camera implements a free-fly camera that keeps an orthonormal, right-handed
// local basis and turns it into a world-to-camera view matrix.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default tuning, matching the reference viewer
const (
	DefaultMovementSpeed    float32 = 2.5
	DefaultRotationRate     float32 = 0.5
	DefaultMouseSensitivity float32 = 0.002
)

// Fixed world frame
var (
	WorldRightAxis = mgl32.Vec3{1, 0, 0}
	WorldUpAxis    = mgl32.Vec3{0, 1, 0}
	WorldBackAxis  = mgl32.Vec3{0, 0, 1}
)

// degenerateEpsilon is the length under which a projected up vector is treated as zero
const degenerateEpsilon = 1e-6

// ErrDegenerateView is returned when the camera position and its target coincide
var ErrDegenerateView = errors.New("camera position and target coincide")

type axis int

const (
	axisRight axis = iota
	axisUp
	axisBack
)

// Camera is a viewpoint with a position and a local right/up/back frame.
// It looks down -back. A Camera is not safe for concurrent use.
type Camera struct {
	position mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3
	back     mgl32.Vec3

	movementSpeed    float32
	rotationRate     float32
	mouseSensitivity float32
	renormalize      bool
}

// Option configures a Camera at construction time
type Option func(*Camera)

// WithMovementSpeed sets the translation speed in world units per second
func WithMovementSpeed(speed float32) Option {
	return func(c *Camera) { c.movementSpeed = speed }
}

// WithRotationRate sets the pitch/yaw/roll rate in radians per second
func WithRotationRate(rate float32) Option {
	return func(c *Camera) { c.rotationRate = rate }
}

// WithMouseSensitivity sets the radians of rotation per unit of cursor offset
func WithMouseSensitivity(sensitivity float32) Option {
	return func(c *Camera) { c.mouseSensitivity = sensitivity }
}

// WithRenormalize re-orthonormalizes the basis after every rotation.
// It is off by default so repeated rotations behave exactly like plain Rodrigues steps.
func WithRenormalize(enabled bool) Option {
	return func(c *Camera) { c.renormalize = enabled }
}

// New builds a camera at position looking at target
func New(position, target mgl32.Vec3, opts ...Option) (*Camera, error) {
	dir := position.Sub(target)
	if dir.Len() == 0 {
		return nil, ErrDegenerateView
	}

	c := &Camera{
		position:         position,
		movementSpeed:    DefaultMovementSpeed,
		rotationRate:     DefaultRotationRate,
		mouseSensitivity: DefaultMouseSensitivity,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.back = dir.Normalize()
	c.up = gramSchmidt(WorldUpAxis, c.back)
	if c.up.Len() < degenerateEpsilon {
		// Looking straight along world up: fall back to the world back axis, signed so
		// that right stays +X.
		ref := WorldBackAxis
		if c.back.Y() > 0 {
			ref = ref.Mul(-1)
		}
		c.up = gramSchmidt(ref, c.back)
	}
	c.up = c.up.Normalize()
	c.right = c.up.Cross(c.back).Normalize()

	return c, nil
}

// gramSchmidt returns the component of v orthogonal to u
func gramSchmidt(v, u mgl32.Vec3) mgl32.Vec3 {
	projection := v.Dot(u) / u.Dot(u)
	return v.Sub(u.Mul(projection))
}

// Position returns the camera position in world space
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Right returns the local X axis
func (c *Camera) Right() mgl32.Vec3 { return c.right }

// Up returns the local Y axis
func (c *Camera) Up() mgl32.Vec3 { return c.up }

// Back returns the local Z axis, pointing from the view target towards the camera
func (c *Camera) Back() mgl32.Vec3 { return c.back }

// Forward returns the view direction
func (c *Camera) Forward() mgl32.Vec3 { return c.back.Mul(-1) }

// MovementSpeed returns the translation speed in world units per second
func (c *Camera) MovementSpeed() float32 { return c.movementSpeed }

// RotationRate returns the orientation rate in radians per second
func (c *Camera) RotationRate() float32 { return c.rotationRate }

// Process applies one movement for a frame that lasted dt seconds.
// Negative or non-finite deltas are ignored.
func (c *Camera) Process(m Movement, dt float32) {
	if !m.Valid() || !usableDelta(dt) {
		return
	}

	switch m.Category() {
	case WorldTranslation:
		c.translate(worldAxisFor(m), m.LinearSign()*c.movementSpeed*dt)
	case CameraTranslation:
		c.translate(c.axis(axisFor(m)), m.LinearSign()*c.movementSpeed*dt)
	case Orientation:
		c.rotate(axisFor(m), m.AngularSign()*c.rotationRate*dt)
	}
}

// ProcessMouse turns the camera from a cursor offset. Positive x looks right and
// positive y looks up.
func (c *Camera) ProcessMouse(xOffset, yOffset float32) {
	if xOffset != 0 {
		c.rotate(axisUp, -xOffset*c.mouseSensitivity)
	}
	if yOffset != 0 {
		c.rotate(axisRight, yOffset*c.mouseSensitivity)
	}
}

// ViewMatrix returns the world-to-camera transform: the translation by -position
// followed by a change into the camera basis.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z())

	// Column-major: the basis vectors end up as rows.
	rotation := mgl32.Mat4{
		c.right.X(), c.up.X(), c.back.X(), 0,
		c.right.Y(), c.up.Y(), c.back.Y(), 0,
		c.right.Z(), c.up.Z(), c.back.Z(), 0,
		0, 0, 0, 1,
	}

	return rotation.Mul4(translation)
}

// Orthonormalize rebuilds the basis with Gram-Schmidt, keeping the view direction
func (c *Camera) Orthonormalize() {
	c.back = c.back.Normalize()
	c.up = gramSchmidt(c.up, c.back).Normalize()
	c.right = c.up.Cross(c.back).Normalize()
}

func (c *Camera) translate(direction mgl32.Vec3, distance float32) {
	c.position = c.position.Add(direction.Mul(distance))
}

// rotate turns every basis vector except the axis itself by angle radians about it
func (c *Camera) rotate(a axis, angle float32) {
	if angle == 0 {
		return
	}

	r := RotationMatrix(c.axis(a), angle)
	if a != axisRight {
		c.right = r.Mul3x1(c.right)
	}
	if a != axisUp {
		c.up = r.Mul3x1(c.up)
	}
	if a != axisBack {
		c.back = r.Mul3x1(c.back)
	}

	if c.renormalize {
		c.Orthonormalize()
	}
}

func (c *Camera) axis(a axis) mgl32.Vec3 {
	switch a {
	case axisRight:
		return c.right
	case axisUp:
		return c.up
	default:
		return c.back
	}
}

// RotationMatrix builds the right-handed rotation of angle radians about the unit axis
// with Rodrigues' formula: I cos + (1-cos) a aT + sin [a]x.
func RotationMatrix(a mgl32.Vec3, angle float32) mgl32.Mat3 {
	s := float32(math.Sin(float64(angle)))
	co := float32(math.Cos(float64(angle)))
	t := 1 - co
	x, y, z := a.X(), a.Y(), a.Z()

	return mgl32.Mat3FromRows(
		mgl32.Vec3{co + x*x*t, x*y*t - z*s, x*z*t + y*s},
		mgl32.Vec3{y*x*t + z*s, co + y*y*t, y*z*t - x*s},
		mgl32.Vec3{z*x*t - y*s, z*y*t + x*s, co + z*z*t},
	)
}

func axisFor(m Movement) axis {
	switch m {
	case CameraRight, CameraLeft, PitchUp, PitchDown:
		return axisRight
	case CameraUp, CameraDown, YawRight, YawLeft:
		return axisUp
	default:
		return axisBack
	}
}

func worldAxisFor(m Movement) mgl32.Vec3 {
	switch m {
	case WorldRight, WorldLeft:
		return WorldRightAxis
	case WorldUp, WorldDown:
		return WorldUpAxis
	case WorldForward, WorldBackward:
		return WorldBackAxis
	default:
		panic(fmt.Sprintf("camera: %v is not a world translation", m))
	}
}

func usableDelta(dt float32) bool {
	return dt > 0 && !math.IsInf(float64(dt), 0)
}
