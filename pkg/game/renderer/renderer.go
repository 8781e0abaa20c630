package renderer

import (
	"fmt"
	"strings"

	engineinput "hexpop/pkg/engine/input"
	"hexpop/pkg/game/gameplay"
	"hexpop/pkg/game/generator"
	"hexpop/pkg/game/locale"
	"hexpop/pkg/game/state"
)

// BubbleIcon is drawn for every bubble in text views
const BubbleIcon = "●"

// StatusText returns the translated status word
func StatusText(s state.Status) string {
	switch s {
	case state.Won:
		return locale.Get("STATUS_WON")
	case state.Lost:
		return locale.Get("STATUS_LOST")
	default:
		return locale.Get("STATUS_PLAYING")
	}
}

// StatusLine is the header shown above the board
func StatusLine(v gameplay.View) string {
	return fmt.Sprintf(locale.Get("STATUS_LINE"), v.Score, v.ShotsLeft, StatusText(v.Status))
}

// QueueLine names the bubble about to be fired and the one after it
func QueueLine(v gameplay.View) string {
	return fmt.Sprintf(locale.Get("QUEUE_LINE"), v.Current, v.Next)
}

// Messages returns the game's message log translated, oldest first
func Messages(v gameplay.View) []string {
	out := make([]string, len(v.Messages))
	for i, key := range v.Messages {
		out[i] = locale.Get(key)
	}
	return out
}

// Banner returns the end of game prompt, or "" while playing
func Banner(v gameplay.View) string {
	if v.Status == state.Playing {
		return ""
	}
	return fmt.Sprintf(locale.Get("PRESS_RESET"), firstBinding(engineinput.ActionResetLevel))
}

// HelpLine lists the main key bindings
func HelpLine() string {
	return fmt.Sprintf(locale.Get("HELP_LINE"),
		firstBinding(engineinput.ActionAimLeft),
		firstBinding(engineinput.ActionAimRight),
		firstBinding(engineinput.ActionFire),
		firstBinding(engineinput.ActionSwap),
		firstBinding(engineinput.ActionResetLevel),
		firstBinding(engineinput.ActionQuit),
	)
}

// firstBinding returns the first printable key bound to an action
func firstBinding(action engineinput.Action) string {
	codes := engineinput.GetBindingsByAction()[action]
	for _, code := range codes {
		if !strings.HasPrefix(code, "gamepad_") {
			return code
		}
	}
	if len(codes) > 0 {
		return codes[0]
	}
	return "?"
}

// BoardLines renders the board as text: one line per row, two characters
// per cell, odd rows shifted right by one. cell turns a bubble letter into
// whatever the backend draws.
func BoardLines(v gameplay.View, rows int, cell func(letter string) string) []string {
	if rows < v.Rows {
		rows = v.Rows
	}
	letters := make([][]string, rows)
	for r := range letters {
		letters[r] = make([]string, v.Width)
	}
	for _, b := range v.Bubbles {
		if b.Pos.Row < rows && b.Pos.Col >= 0 && b.Pos.Col < v.Width {
			letters[b.Pos.Row][b.Pos.Col] = generator.Letter(b.Color)
		}
	}

	lines := make([]string, rows)
	for r, row := range letters {
		var sb strings.Builder
		if r%2 == 1 {
			sb.WriteString(" ")
		}
		for _, letter := range row {
			if letter == "" {
				sb.WriteString("  ")
				continue
			}
			sb.WriteString(cell(letter))
			sb.WriteString(" ")
		}
		lines[r] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

// AimMarker returns the column, in BoardLines characters, of the launcher
// and the character showing the aim direction
func AimMarker(v gameplay.View) (col int, marker string) {
	col = int((v.Origin.X-v.Layout.Origin.X)/v.Layout.CellSize*2 + 0.5)
	switch {
	case v.Angle < -0.35:
		marker = "\\"
	case v.Angle > 0.35:
		marker = "/"
	default:
		marker = "|"
	}
	return col, marker
}

// Describe is a one line summary for logs
func Describe(v gameplay.View) string {
	return fmt.Sprintf("bubbles=%d score=%d status=%s", len(v.Bubbles), v.Score, v.Status)
}
