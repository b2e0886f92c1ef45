// Package controls maps held keys and cursor motion onto camera commands once per frame.
package controls

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"flycam/pkg/camera"
)

// ErrUnknownKey is returned when a binding names a key outside KeyNames
var ErrUnknownKey = errors.New("unknown key name")

// Processor is anything that accepts camera movements
type Processor interface {
	Process(m camera.Movement, dt float32)
}

// Binding ties one key to one camera movement
type Binding struct {
	Key     string
	Command camera.Movement
}

// Bindings is an ordered key map. Order follows the movement declaration order so that
// world translation is applied before camera translation, and both before orientation.
type Bindings []Binding

// KeyNames lists the key names bindings may use. Escape is not among them: it always quits.
var KeyNames = func() []string {
	names := []string{
		"up", "down", "left", "right",
		"space", "enter", "tab", "backspace",
		"insert", "delete", "home", "end", "page_up", "page_down",
		"left_shift", "right_shift", "left_control", "right_control", "left_alt", "right_alt",
	}
	for c := 'a'; c <= 'z'; c++ {
		names = append(names, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		names = append(names, string(c))
	}
	return names
}()

// DefaultBindings returns the stock layout: arrows and control keys move along world
// axes, WASD with space/shift move along camera axes, and I/M/J/K/H/L turn.
func DefaultBindings() Bindings {
	return Bindings{
		{"up", camera.WorldForward},
		{"down", camera.WorldBackward},
		{"right", camera.WorldRight},
		{"left", camera.WorldLeft},
		{"right_control", camera.WorldUp},
		{"left_control", camera.WorldDown},

		{"w", camera.CameraForward},
		{"s", camera.CameraBackward},
		{"d", camera.CameraRight},
		{"a", camera.CameraLeft},
		{"space", camera.CameraUp},
		{"left_shift", camera.CameraDown},

		{"i", camera.PitchUp},
		{"m", camera.PitchDown},
		{"k", camera.YawRight},
		{"j", camera.YawLeft},
		{"l", camera.RollRight},
		{"h", camera.RollLeft},
	}
}

// ParseBindings overlays command-name to key-name overrides onto the default layout
func ParseBindings(overrides map[string]string) (Bindings, error) {
	bindings := DefaultBindings()
	index := make(map[camera.Movement]int, len(bindings))
	for i, b := range bindings {
		index[b.Command] = i
	}

	for name, key := range overrides {
		m, err := camera.ParseMovement(name)
		if err != nil {
			return nil, err
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if !IsKnownKey(key) {
			return nil, fmt.Errorf("%w %q for %s", ErrUnknownKey, key, m)
		}
		bindings[index[m]].Key = key
	}

	bindings.sort()
	return bindings, nil
}

// IsKnownKey reports whether name is listed in KeyNames
func IsKnownKey(name string) bool {
	for _, k := range KeyNames {
		if k == name {
			return true
		}
	}
	return false
}

// Keys returns the distinct key names in dispatch order
func (b Bindings) Keys() []string {
	seen := make(map[string]bool, len(b))
	keys := make([]string, 0, len(b))
	for _, binding := range b {
		if !seen[binding.Key] {
			seen[binding.Key] = true
			keys = append(keys, binding.Key)
		}
	}
	return keys
}

// Dispatch applies, in order, every movement whose key is held and returns how many
// were applied. Simultaneous keys compose sequentially on the same camera.
func (b Bindings) Dispatch(pressed func(key string) bool, p Processor, dt float32) int {
	applied := 0
	for _, binding := range b {
		if pressed(binding.Key) {
			p.Process(binding.Command, dt)
			applied++
		}
	}
	return applied
}

func (b Bindings) sort() {
	sort.SliceStable(b, func(i, j int) bool {
		return b[i].Command < b[j].Command
	})
}
