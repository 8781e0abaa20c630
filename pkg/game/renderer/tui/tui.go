// Package tui draws the board in a terminal with ANSI colors and reads keys
// from the terminal in raw mode.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"

	"hexpop/pkg/engine/input"
	"hexpop/pkg/engine/terminal"
	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/gameplay"
	"hexpop/pkg/game/renderer"
	"hexpop/pkg/game/state"
)

// DefaultRefresh is how often the board is redrawn while animations run
const DefaultRefresh = 50 * time.Millisecond

// letterColors maps pattern letters to terminal colors
var letterColors = map[string]world.Color{
	"R": world.Red,
	"B": world.Blue,
	"G": world.Green,
	"Y": world.Yellow,
	"P": world.Purple,
	"C": world.Cyan,
}

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out     io.Writer
	in      *os.File
	keys    *input.KeyReader
	logger  *slog.Logger
	refresh time.Duration

	bubbleStyles map[world.Color]color.Style
	colorSubtle  color.Style
	colorAction  color.Style
	colorDenied  color.Style
	colorItem    color.Style
}

// New creates a new TUI renderer writing to stdout
func New(logger *slog.Logger) *TUIRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TUIRenderer{
		out:     os.Stdout,
		in:      os.Stdin,
		logger:  logger.With("component", "tui"),
		refresh: DefaultRefresh,
	}
}

// Name returns "tui"
func (t *TUIRenderer) Name() string {
	return "tui"
}

// Init sets up colors and puts the terminal into raw mode
func (t *TUIRenderer) Init() error {
	t.initColors()

	keys, err := input.NewKeyReader(t.in)
	if err != nil {
		return err
	}
	t.keys = keys
	terminal.HideCursor(t.out)
	terminal.Clear(t.out)
	return nil
}

func (t *TUIRenderer) initColors() {
	t.bubbleStyles = map[world.Color]color.Style{
		world.Red:    {color.FgRed, color.OpBold},
		world.Blue:   {color.FgBlue, color.OpBold},
		world.Green:  {color.FgGreen, color.OpBold},
		world.Yellow: {color.FgYellow, color.OpBold},
		world.Purple: {color.FgMagenta, color.OpBold},
		world.Cyan:   {color.FgCyan, color.OpBold},
	}
	t.colorSubtle = color.Style{color.FgGray}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorItem = color.Style{color.FgGreen}
}

// Close restores the terminal
func (t *TUIRenderer) Close() error {
	terminal.ShowCursor(t.out)
	fmt.Fprint(t.out, "\r\n")
	if t.keys == nil {
		return nil
	}
	return t.keys.Close()
}

// Run steps the game in the background and redraws on every key and on a
// short timer so destruction animations show
func (t *TUIRenderer) Run(ctx context.Context, s *gameplay.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := s.Game().Run(ctx, state.DefaultTick); err != nil && ctx.Err() == nil {
			t.logger.Error("game loop stopped", "err", err)
		}
	}()
	t.keys.Start(ctx)

	ticker := time.NewTicker(t.refresh)
	defer ticker.Stop()

	t.draw(s.View())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-t.keys.Events():
			if !ok {
				return nil
			}
			intent := input.MapToIntent(input.NewDebouncedInput(ev))
			if gameplay.ProcessIntent(s, intent) {
				return nil
			}
			t.draw(s.View())
		case <-ticker.C:
			t.draw(s.View())
		}
	}
}

func (t *TUIRenderer) draw(v gameplay.View) {
	terminal.Home(t.out)
	fmt.Fprint(t.out, t.Frame(v, terminal.GetWidth()))
}

// Frame renders one complete frame. Lines end in "\r\n" because the terminal
// is in raw mode.
func (t *TUIRenderer) Frame(v gameplay.View, width int) string {
	if t.bubbleStyles == nil {
		t.initColors()
	}
	var lines []string

	lines = append(lines, t.colorAction.Sprint(renderer.StatusLine(v)))
	lines = append(lines, t.queueLine(v))
	lines = append(lines, "")

	boardWidth := 2*v.Width + 1
	border := t.colorSubtle.Sprint("+" + strings.Repeat("-", boardWidth) + "+")
	lines = append(lines, border)

	loseRow := loseLineRow(v)
	loseLine := t.colorDenied.Sprint("+" + strings.Repeat("~", boardWidth) + "+")
	board := renderer.BoardLines(v, loseRow, t.cell)
	for r, line := range board {
		if r == loseRow {
			lines = append(lines, loseLine)
		}
		pad := boardWidth - visibleLen(line)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, t.colorSubtle.Sprint("|")+line+strings.Repeat(" ", pad)+t.colorSubtle.Sprint("|"))
	}
	if loseRow >= len(board) {
		lines = append(lines, loseLine)
	}

	col, marker := renderer.AimMarker(v)
	if col > boardWidth-1 {
		col = boardWidth - 1
	}
	lines = append(lines, " "+strings.Repeat(" ", col)+t.colorAction.Sprint(marker))
	lines = append(lines, " "+strings.Repeat(" ", col)+t.bubble(v.Current))
	lines = append(lines, border)
	lines = append(lines, "")

	if banner := renderer.Banner(v); banner != "" {
		lines = append(lines, t.colorDenied.Sprint(banner), "")
	}

	lines = append(lines, t.messagesPane(renderer.Messages(v), width)...)
	lines = append(lines, t.colorSubtle.Sprint(renderer.HelpLine()))

	for i, line := range lines {
		lines[i] = line + terminal.ClearLine()
	}
	return strings.Join(lines, "\r\n")
}

func (t *TUIRenderer) queueLine(v gameplay.View) string {
	return t.colorSubtle.Sprint("Now ") + t.bubble(v.Current) + t.colorSubtle.Sprint("  Next ") + t.bubble(v.Next)
}

func (t *TUIRenderer) bubble(c world.Color) string {
	if style, ok := t.bubbleStyles[c]; ok {
		return style.Sprint(renderer.BubbleIcon)
	}
	return renderer.BubbleIcon
}

func (t *TUIRenderer) cell(letter string) string {
	return t.bubble(letterColors[letter])
}

// messagesPane renders the message log between two rules
func (t *TUIRenderer) messagesPane(msgs []string, width int) []string {
	label := " Messages "
	sideLen := (width - len(label)) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := width - sideLen - len(label)
	if rightLen < 1 {
		rightLen = 1
	}

	out := []string{t.colorSubtle.Sprint(strings.Repeat("─", sideLen) + label + strings.Repeat("─", rightLen))}
	if len(msgs) == 0 {
		out = append(out, t.colorSubtle.Sprint("  (no messages)"))
	}
	for _, msg := range msgs {
		out = append(out, "  "+t.colorItem.Sprint(msg))
	}
	out = append(out, t.colorSubtle.Sprint(strings.Repeat("─", width)))
	return out
}

// loseLineRow is the first row at or past the lose line
func loseLineRow(v gameplay.View) int {
	if v.Layout.RowHeight <= 0 {
		return v.Rows
	}
	return int(math.Floor((v.LoseLineY - v.Layout.Origin.Y) / v.Layout.RowHeight))
}

func visibleLen(s string) int {
	return len([]rune(color.ClearCode(s)))
}
