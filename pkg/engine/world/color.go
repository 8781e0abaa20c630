package world

import (
	"fmt"
	"strings"
)

// Color is the type tag of a bubble
type Color int

// Color constants
const (
	Red Color = iota
	Blue
	Green
	Yellow
	Purple
	Cyan
)

// colorCount is the size of the closed color enumeration
const colorCount = 6

// AllColors returns the full color enumeration in declaration order
func AllColors() []Color {
	return []Color{Red, Blue, Green, Yellow, Purple, Cyan}
}

// IsValid returns true if the color belongs to the enumeration
func (c Color) IsValid() bool {
	return c >= Red && c < colorCount
}

// String returns the lowercase name of the color
func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Purple:
		return "purple"
	case Cyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// ParseColor converts a color name into a Color
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, c := range AllColors() {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (c Color) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid color %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so colors can be named in config files
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
