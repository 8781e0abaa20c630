package devtools

import (
	"fmt"
	"sort"
	"strings"

	"hexpop/pkg/game/generator"
)

// devBoards are hand-built boards for exercising specific engine paths
var devBoards = map[string][]string{
	// A three bubble red match that drops the yellow pair hanging below it
	"floating": {
		"B B R R B B . .",
		". . R . . . . .",
		". . Y Y . . . .",
	},
	// Nearly full board one shot from clearing
	"clear": {
		"G G . . . . . .",
	},
	// Two clusters joined by a single red bubble
	"bridge": {
		"B B . . . . . .",
		". R . . . . . .",
		". R Y Y Y . . .",
		". . . . G . . .",
	},
	// Deep board close to the default lose line
	"deep": {
		"R B G Y R B G Y",
		"B G Y R B G Y R",
		"G Y R B G Y R B",
		"Y R B G Y R B G",
		"R B G Y R B G Y",
		"B G Y R B G Y R",
		"G Y R B G Y R B",
		"Y R B G Y R B G",
		"R B G Y R B G Y",
	},
}

// ContainsSubstring checks if s contains substr (case-insensitive)
func ContainsSubstring(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// DevBoardNames returns the names of the developer boards, sorted
func DevBoardNames() []string {
	names := make([]string, 0, len(devBoards))
	for name := range devBoards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DevBoard returns a pattern generator for the named developer board. The
// name may be any unambiguous part of a board name.
func DevBoard(name string) (*generator.PatternGenerator, error) {
	if rows, ok := devBoards[name]; ok {
		return &generator.PatternGenerator{Rows: rows}, nil
	}

	var matches []string
	for _, candidate := range DevBoardNames() {
		if ContainsSubstring(candidate, name) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("unknown dev board %q (have %s)", name, strings.Join(DevBoardNames(), ", "))
	case 1:
		return &generator.PatternGenerator{Rows: devBoards[matches[0]]}, nil
	default:
		return nil, fmt.Errorf("dev board %q is ambiguous: %s", name, strings.Join(matches, ", "))
	}
}
