package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceGamepad
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Aiming
	ActionAimLeft
	ActionAimRight
	ActionAimFineLeft
	ActionAimFineRight
	ActionFire
	ActionSwap

	// Meta / UI
	ActionQuit
	ActionResetLevel // Refill the board (F5)
	ActionScreenshot
	ActionDumpGrid // Write the grid as pattern rows (F9)
	ActionCopyGrid // Copy the grid pattern to the clipboard
	ActionSpawnRow // Force a row insertion (F8)
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "KeyW", "arrow_up", "GamepadDPadUp").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// reservedCodes can never be rebound or unbound
var reservedCodes = map[string]bool{
	"arrow_left":  true,
	"arrow_right": true,
	"space":       true,
	"enter":       true,
	"ctrl_c":      true,
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	"arrow_left":  ActionAimLeft,
	"a":           ActionAimLeft,
	"h":           ActionAimLeft,
	"arrow_right": ActionAimRight,
	"d":           ActionAimRight,
	"l":           ActionAimRight,
	"A":           ActionAimFineLeft,
	"D":           ActionAimFineRight,

	"space":      ActionFire,
	"enter":      ActionFire,
	"arrow_up":   ActionFire,
	"w":          ActionFire,
	"k":          ActionFire,
	"tab":        ActionSwap,
	"arrow_down": ActionSwap,
	"s":          ActionSwap,
	"j":          ActionSwap,

	// Quit
	"quit":   ActionQuit,
	"q":      ActionQuit,
	"escape": ActionQuit,
	"ctrl_c": ActionQuit,

	"r":          ActionResetLevel,
	"f5":         ActionResetLevel,
	"screenshot": ActionScreenshot,
	"p":          ActionScreenshot,
	"f9":         ActionDumpGrid,
	"c":          ActionCopyGrid,
	"f8":         ActionSpawnRow,

	// Controller/gamepad specific bindings
	"gamepad_dpad_left":  ActionAimLeft,
	"gamepad_dpad_right": ActionAimRight,
	"gamepad_a":          ActionFire,
	"gamepad_x":          ActionSwap,
	"gamepad_b":          ActionQuit,
	"gamepad_start":      ActionResetLevel,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionAimLeft:
		return "Aim Left"
	case ActionAimRight:
		return "Aim Right"
	case ActionAimFineLeft:
		return "Aim Left (fine)"
	case ActionAimFineRight:
		return "Aim Right (fine)"
	case ActionFire:
		return "Fire"
	case ActionSwap:
		return "Swap"
	case ActionQuit:
		return "Quit"
	case ActionResetLevel:
		return "Reset Level"
	case ActionScreenshot:
		return "Screenshot"
	case ActionDumpGrid:
		return "Dump Grid"
	case ActionCopyGrid:
		return "Copy Grid"
	case ActionSpawnRow:
		return "Spawn Row"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help text doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all non-reserved bindings for the given action
// with a single code. Reserved codes cannot be rebound.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reservedCodes[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reservedCodes[code] {
		bindings[code] = action
	}
}
