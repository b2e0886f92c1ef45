package camera_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flycam/pkg/camera"
)

const tolerance = 1e-5

func newCamera(t *testing.T, position, target mgl32.Vec3, opts ...camera.Option) *camera.Camera {
	t.Helper()
	cam, err := camera.New(position, target, opts...)
	require.NoError(t, err)
	return cam
}

// near compares with an absolute tolerance. mgl32's ApproxEqualThreshold squares the
// threshold whenever one side is zero, which float32 rounding cannot meet.
func near(a, b float32) bool {
	return mgl32.Abs(a-b) <= tolerance
}

func assertVecNear(t *testing.T, expected, actual mgl32.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	if !expected.ApproxFuncEqual(actual, near) {
		assert.Fail(t, fmt.Sprintf("expected %v, got %v", expected, actual), msgAndArgs...)
	}
}

func assertOrthonormal(t *testing.T, cam *camera.Camera) {
	t.Helper()
	r, u, b := cam.Right(), cam.Up(), cam.Back()

	assert.InDelta(t, 1, r.Len(), tolerance, "right length")
	assert.InDelta(t, 1, u.Len(), tolerance, "up length")
	assert.InDelta(t, 1, b.Len(), tolerance, "back length")
	assert.InDelta(t, 0, r.Dot(u), tolerance, "right.up")
	assert.InDelta(t, 0, r.Dot(b), tolerance, "right.back")
	assert.InDelta(t, 0, u.Dot(b), tolerance, "up.back")
	assertVecNear(t, r, u.Cross(b), "basis must be right-handed")
}

func TestNewBasisIsOrthonormal(t *testing.T) {
	cases := []struct {
		name             string
		position, target mgl32.Vec3
	}{
		{"diagonal", mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0}},
		{"along z", mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}},
		{"offset target", mgl32.Vec3{-2, 1, 7}, mgl32.Vec3{4, -3, 0.5}},
		{"below target", mgl32.Vec3{1, -10, 2}, mgl32.Vec3{0, 0, 0}},
		{"straight down", mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 0, 0}},
		{"straight up", mgl32.Vec3{0, -5, 0}, mgl32.Vec3{0, 0, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := newCamera(t, c.position, c.target)
			assertOrthonormal(t, cam)
			assertVecNear(t, c.position.Sub(c.target).Normalize(), cam.Back())
			assert.Equal(t, c.position, cam.Position())
		})
	}
}

func TestNewLooksAlongWorldUpKeepsRightOnX(t *testing.T) {
	down := newCamera(t, mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 0, 0})
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, down.Right())
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, down.Up())

	up := newCamera(t, mgl32.Vec3{0, -5, 0}, mgl32.Vec3{0, 0, 0})
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, up.Right())
	assertVecNear(t, mgl32.Vec3{0, 0, 1}, up.Up())
}

func TestNewRejectsCoincidentTarget(t *testing.T) {
	cam, err := camera.New(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 2, 3})
	assert.ErrorIs(t, err, camera.ErrDegenerateView)
	assert.Nil(t, cam)
}

func TestNewFromZAxisMatchesWorldFrame(t *testing.T) {
	cam := newCamera(t, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 0})
	assertVecNear(t, camera.WorldRightAxis, cam.Right())
	assertVecNear(t, camera.WorldUpAxis, cam.Up())
	assertVecNear(t, camera.WorldBackAxis, cam.Back())
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, cam.Forward())
}

func TestViewMatrixMapsTargetInFrontOfCamera(t *testing.T) {
	position := mgl32.Vec3{3, 3, 3}
	cam := newCamera(t, position, mgl32.Vec3{0, 0, 0})

	target := cam.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})

	assert.InDelta(t, 0, target.X(), tolerance)
	assert.InDelta(t, 0, target.Y(), tolerance)
	assert.InDelta(t, -position.Len(), target.Z(), tolerance)
	assert.InDelta(t, 1, target.W(), tolerance)
}

func TestViewMatrixMovesCameraToOrigin(t *testing.T) {
	cam := newCamera(t, mgl32.Vec3{-2, 1, 7}, mgl32.Vec3{4, -3, 0.5})
	cam.Process(camera.RollLeft, 0.7)
	cam.Process(camera.CameraForward, 1.3)

	p := cam.Position()
	origin := cam.ViewMatrix().Mul4x1(p.Vec4(1))
	assertVecNear(t, mgl32.Vec3{0, 0, 0}, origin.Vec3())

	// A point one unit ahead lands on the local -Z axis.
	ahead := cam.ViewMatrix().Mul4x1(p.Add(cam.Forward()).Vec4(1))
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, ahead.Vec3())
}

func TestViewMatrixMatchesLookAt(t *testing.T) {
	eye := mgl32.Vec3{3, 3, 3}
	cam := newCamera(t, eye, mgl32.Vec3{0, 0, 0})

	expected := mgl32.LookAtV(eye, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	assert.True(t, expected.ApproxFuncEqual(cam.ViewMatrix(), near),
		"expected %v, got %v", expected, cam.ViewMatrix())
}

func TestWorldTranslationIgnoresOrientation(t *testing.T) {
	speed := camera.DefaultMovementSpeed
	dt := float32(0.4)
	cases := []struct {
		movement  camera.Movement
		direction mgl32.Vec3
	}{
		{camera.WorldForward, mgl32.Vec3{0, 0, -1}},
		{camera.WorldBackward, mgl32.Vec3{0, 0, 1}},
		{camera.WorldRight, mgl32.Vec3{1, 0, 0}},
		{camera.WorldLeft, mgl32.Vec3{-1, 0, 0}},
		{camera.WorldUp, mgl32.Vec3{0, 1, 0}},
		{camera.WorldDown, mgl32.Vec3{0, -1, 0}},
	}

	for _, c := range cases {
		t.Run(c.movement.String(), func(t *testing.T) {
			cam := newCamera(t, mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0})
			cam.Process(camera.YawLeft, 1.1)
			cam.Process(camera.RollRight, 0.3)
			start := cam.Position()
			right, up, back := cam.Right(), cam.Up(), cam.Back()

			cam.Process(c.movement, dt)

			assertVecNear(t, start.Add(c.direction.Mul(speed*dt)), cam.Position())
			assert.Equal(t, right, cam.Right())
			assert.Equal(t, up, cam.Up())
			assert.Equal(t, back, cam.Back())
		})
	}
}

func TestCameraTranslationFollowsBasis(t *testing.T) {
	dt := float32(0.25)
	cam := newCamera(t, mgl32.Vec3{-2, 1, 7}, mgl32.Vec3{4, -3, 0.5}, camera.WithMovementSpeed(4))
	step := float32(4) * dt

	cases := []struct {
		movement  camera.Movement
		direction func() mgl32.Vec3
	}{
		{camera.CameraForward, func() mgl32.Vec3 { return cam.Back().Mul(-1) }},
		{camera.CameraBackward, cam.Back},
		{camera.CameraRight, cam.Right},
		{camera.CameraLeft, func() mgl32.Vec3 { return cam.Right().Mul(-1) }},
		{camera.CameraUp, cam.Up},
		{camera.CameraDown, func() mgl32.Vec3 { return cam.Up().Mul(-1) }},
	}

	for _, c := range cases {
		start := cam.Position()
		expected := start.Add(c.direction().Mul(step))
		cam.Process(c.movement, dt)
		assertVecNear(t, expected, cam.Position(), c.movement.String())
	}
}

func TestCameraForwardAfterQuarterYaw(t *testing.T) {
	rate := float32(0.5)
	cam := newCamera(t, mgl32.Vec3{0, 0, 0.0001}, mgl32.Vec3{0, 0, -1}, camera.WithRotationRate(rate))
	origin := cam.Position()

	// Quarter turn to the right: forward goes from -Z to +X.
	cam.Process(camera.YawRight, (math.Pi/2)/rate)
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, cam.Forward())

	cam.Process(camera.CameraForward, 1)
	displacement := cam.Position().Sub(origin)
	assertVecNear(t, mgl32.Vec3{camera.DefaultMovementSpeed, 0, 0}, displacement)
}

func TestRotationKeepsAxisAndTurnsByExactAngle(t *testing.T) {
	dt := float32(0.6)
	cases := []struct {
		movement camera.Movement
		axis     func(*camera.Camera) mgl32.Vec3
	}{
		{camera.PitchUp, (*camera.Camera).Right},
		{camera.PitchDown, (*camera.Camera).Right},
		{camera.YawRight, (*camera.Camera).Up},
		{camera.YawLeft, (*camera.Camera).Up},
		{camera.RollRight, (*camera.Camera).Back},
		{camera.RollLeft, (*camera.Camera).Back},
	}

	for _, c := range cases {
		t.Run(c.movement.String(), func(t *testing.T) {
			cam := newCamera(t, mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0})
			a := c.axis(cam)
			right, up, back := cam.Right(), cam.Up(), cam.Back()
			angle := c.movement.AngularSign() * camera.DefaultRotationRate * dt
			expected := mgl32.HomogRotate3D(angle, a)
			rotated := func(v mgl32.Vec3) mgl32.Vec3 { return expected.Mul4x1(v.Vec4(0)).Vec3() }

			cam.Process(c.movement, dt)

			assert.Equal(t, a, c.axis(cam), "rotation axis must be untouched")
			assertVecNear(t, rotated(right), cam.Right())
			assertVecNear(t, rotated(up), cam.Up())
			assertVecNear(t, rotated(back), cam.Back())
			assertVecNear(t, cam.Position(), mgl32.Vec3{3, 3, 3})
			assertOrthonormal(t, cam)
		})
	}
}

func TestRotationDirections(t *testing.T) {
	dt := float32(0.2)

	cam := newCamera(t, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 0})
	cam.Process(camera.YawRight, dt)
	assert.Greater(t, cam.Forward().X(), float32(0), "yaw right turns towards +X")

	cam = newCamera(t, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 0})
	cam.Process(camera.RollRight, dt)
	assert.Greater(t, cam.Up().X(), float32(0), "roll right banks up towards +X")

	cam = newCamera(t, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 0})
	cam.Process(camera.PitchUp, dt)
	assert.Less(t, cam.Forward().Y(), float32(0), "pitch up pushes the nose down")

	cam = newCamera(t, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 0})
	cam.Process(camera.PitchDown, dt)
	assert.Greater(t, cam.Forward().Y(), float32(0))
}

func TestRotationAndInverseRestoreBasis(t *testing.T) {
	pairs := [][2]camera.Movement{
		{camera.PitchUp, camera.PitchDown},
		{camera.YawLeft, camera.YawRight},
		{camera.RollRight, camera.RollLeft},
	}

	for _, p := range pairs {
		cam := newCamera(t, mgl32.Vec3{-2, 1, 7}, mgl32.Vec3{4, -3, 0.5})
		right, up, back := cam.Right(), cam.Up(), cam.Back()

		cam.Process(p[0], 0.37)
		cam.Process(p[1], 0.37)

		assertVecNear(t, right, cam.Right(), p[0].String())
		assertVecNear(t, up, cam.Up(), p[0].String())
		assertVecNear(t, back, cam.Back(), p[0].String())
	}
}

func TestZeroDeltaIsIdentity(t *testing.T) {
	for _, m := range camera.Movements() {
		cam := newCamera(t, mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0})
		position, right, up, back := cam.Position(), cam.Right(), cam.Up(), cam.Back()

		cam.Process(m, 0)

		assert.Equal(t, position, cam.Position(), m.String())
		assert.Equal(t, right, cam.Right(), m.String())
		assert.Equal(t, up, cam.Up(), m.String())
		assert.Equal(t, back, cam.Back(), m.String())
	}
}

func TestUnusableDeltaIsIgnored(t *testing.T) {
	cam := newCamera(t, mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0})
	position, back := cam.Position(), cam.Back()

	cam.Process(camera.CameraForward, -1)
	cam.Process(camera.YawLeft, float32(math.NaN()))
	cam.Process(camera.WorldUp, float32(math.Inf(1)))
	cam.Process(camera.Movement(99), 1)

	assert.Equal(t, position, cam.Position())
	assert.Equal(t, back, cam.Back())
}

func TestRepeatedRotationsDriftWithoutRenormalize(t *testing.T) {
	plain := newCamera(t, mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0})
	fixed := newCamera(t, mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0}, camera.WithRenormalize(true))

	for i := 0; i < 2000; i++ {
		for _, m := range []camera.Movement{camera.PitchUp, camera.YawLeft, camera.RollRight} {
			plain.Process(m, 0.016)
			fixed.Process(m, 0.016)
		}
	}

	assertOrthonormal(t, fixed)
	// Both stay close for a long session; only the renormalized one is exact.
	assert.InDelta(t, 1, plain.Back().Len(), 1e-2)
}

func TestOrthonormalizeRepairsBasis(t *testing.T) {
	cam := newCamera(t, mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0})
	forward := cam.Forward()

	cam.Orthonormalize()

	assertOrthonormal(t, cam)
	assertVecNear(t, forward, cam.Forward())
}

func TestProcessMouse(t *testing.T) {
	cam := newCamera(t, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 0}, camera.WithMouseSensitivity(0.01))
	position := cam.Position()

	cam.ProcessMouse(10, 0)
	assert.Greater(t, cam.Forward().X(), float32(0), "moving the cursor right looks right")
	assert.InDelta(t, math.Sin(0.1), cam.Forward().X(), tolerance)

	cam.ProcessMouse(0, 10)
	assert.Greater(t, cam.Forward().Y(), float32(0), "moving the cursor up looks up")

	assert.Equal(t, position, cam.Position())
	assertOrthonormal(t, cam)
}

func TestProcessMouseWithoutSensitivityDoesNothing(t *testing.T) {
	cam := newCamera(t, mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 0}, camera.WithMouseSensitivity(0))
	back := cam.Back()

	cam.ProcessMouse(100, -40)

	assert.Equal(t, back, cam.Back())
}

func TestRotationMatrixIsRightHanded(t *testing.T) {
	r := camera.RotationMatrix(mgl32.Vec3{0, 0, 1}, math.Pi/2)
	assertVecNear(t, mgl32.Vec3{0, 1, 0}, r.Mul3x1(mgl32.Vec3{1, 0, 0}))

	axis := mgl32.Vec3{1, 2, -0.5}.Normalize()
	expected := mgl32.HomogRotate3D(0.8, axis).Mat3()
	assert.True(t, expected.ApproxFuncEqual(camera.RotationMatrix(axis, 0.8), near),
		"expected %v, got %v", expected, camera.RotationMatrix(axis, 0.8))
}
