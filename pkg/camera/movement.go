package camera

import (
	"errors"
	"fmt"
)

// Movement is a discrete camera command issued once per frame while its key is held.
// The declaration order is the order in which commands are evaluated each frame.
type Movement int

const (
	WorldForward Movement = iota
	WorldBackward
	WorldRight
	WorldLeft
	WorldUp
	WorldDown

	CameraForward
	CameraBackward
	CameraRight
	CameraLeft
	CameraUp
	CameraDown

	PitchUp
	PitchDown
	YawRight
	YawLeft
	RollRight
	RollLeft

	movementCount
)

// Category groups movements by the handler that applies them
type Category int

const (
	WorldTranslation Category = iota
	CameraTranslation
	Orientation
)

// ErrUnknownMovement is returned when a movement name cannot be parsed
var ErrUnknownMovement = errors.New("unknown camera movement")

var movementNames = [movementCount]string{
	WorldForward:   "worldForward",
	WorldBackward:  "worldBackward",
	WorldRight:     "worldRight",
	WorldLeft:      "worldLeft",
	WorldUp:        "worldUp",
	WorldDown:      "worldDown",
	CameraForward:  "cameraForward",
	CameraBackward: "cameraBackward",
	CameraRight:    "cameraRight",
	CameraLeft:     "cameraLeft",
	CameraUp:       "cameraUp",
	CameraDown:     "cameraDown",
	PitchUp:        "pitchUp",
	PitchDown:      "pitchDown",
	YawRight:       "yawRight",
	YawLeft:        "yawLeft",
	RollRight:      "rollRight",
	RollLeft:       "rollLeft",
}

// Movements returns every movement in evaluation order
func Movements() []Movement {
	all := make([]Movement, 0, movementCount)
	for m := Movement(0); m < movementCount; m++ {
		all = append(all, m)
	}
	return all
}

// ParseMovement converts a name such as "yawLeft" into a Movement
func ParseMovement(name string) (Movement, error) {
	for i, n := range movementNames {
		if n == name {
			return Movement(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMovement, name)
}

// Valid reports whether m is one of the declared movements
func (m Movement) Valid() bool {
	return m >= 0 && m < movementCount
}

func (m Movement) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Movement(%d)", int(m))
	}
	return movementNames[m]
}

// Category returns the handler group of the movement
func (m Movement) Category() Category {
	switch {
	case m < CameraForward:
		return WorldTranslation
	case m < PitchUp:
		return CameraTranslation
	default:
		return Orientation
	}
}

// LinearSign is +1 when the movement displaces along the positive direction of its axis
// and -1 otherwise. Forward is -back, so the forward movements are negative.
func (m Movement) LinearSign() float32 {
	switch m {
	case WorldForward, WorldLeft, WorldDown, CameraForward, CameraLeft, CameraDown:
		return -1
	}
	return 1
}

// AngularSign is the sign of the right-handed rotation angle for orientation movements.
// Turning right, banking right and pitching up (flight-stick style, nose down) are
// negative rotations about their axis.
func (m Movement) AngularSign() float32 {
	switch m {
	case PitchUp, YawRight, RollRight:
		return -1
	}
	return 1
}
