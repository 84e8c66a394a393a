// Package input samples keyboard and pointer state between frames.
package input

import (
	"fmt"
	"strings"
)

// Key is a platform-neutral physical key.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyShiftLeft
	KeyShiftRight
	KeyEscape
	KeyF12
)

var keyNames = map[Key]string{
	KeyW:          "W",
	KeyA:          "A",
	KeyS:          "S",
	KeyD:          "D",
	KeyUp:         "Up",
	KeyDown:       "Down",
	KeyLeft:       "Left",
	KeyRight:      "Right",
	KeySpace:      "Space",
	KeyShiftLeft:  "ShiftLeft",
	KeyShiftRight: "ShiftRight",
	KeyEscape:     "Escape",
	KeyF12:        "F12",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKey resolves a key name as written in config files (case-insensitive).
func ParseKey(name string) (Key, error) {
	for k, n := range keyNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// Action is what a key means to the controller.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBack
	ActionLeft
	ActionRight
	ActionJump
	ActionRun
)

var actionNames = map[Action]string{
	ActionForward: "forward",
	ActionBack:    "back",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionJump:    "jump",
	ActionRun:     "run",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// Bindings maps keys to actions. Several keys may share an action.
type Bindings map[Key]Action

// DefaultBindings returns WASD plus arrows, Space to jump and left Shift to toggle run.
func DefaultBindings() Bindings {
	return Bindings{
		KeyW:         ActionForward,
		KeyUp:        ActionForward,
		KeyA:         ActionLeft,
		KeyLeft:      ActionLeft,
		KeyS:         ActionBack,
		KeyDown:      ActionBack,
		KeyD:         ActionRight,
		KeyRight:     ActionRight,
		KeySpace:     ActionJump,
		KeyShiftLeft: ActionRun,
	}
}

// ParseBindings builds bindings from action names to key names, e.g.
// {"forward": ["W", "Up"]}. Actions missing from m keep no binding.
func ParseBindings(m map[string][]string) (Bindings, error) {
	b := make(Bindings)
	for actionName, keys := range m {
		action, err := parseAction(actionName)
		if err != nil {
			return nil, err
		}
		for _, name := range keys {
			k, err := ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("action %s: %w", actionName, err)
			}
			if prev, ok := b[k]; ok && prev != action {
				return nil, fmt.Errorf("key %s bound to both %s and %s", k, prev, action)
			}
			b[k] = action
		}
	}
	return b, nil
}

func parseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if strings.EqualFold(n, name) {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}
