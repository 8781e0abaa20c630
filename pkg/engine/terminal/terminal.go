// Package terminal has the screen helpers the text renderer needs: size
// queries and the few ANSI sequences for redrawing in place.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ANSI control sequences
const (
	seqHome       = "\033[H"
	seqClear      = "\033[2J"
	seqClearLine  = "\033[K"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the current terminal width.
// Falls back to DefaultWidth if the width cannot be determined.
func GetWidth() int {
	width, _ := GetSize()
	return width
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Clear clears the screen and homes the cursor
func Clear(w io.Writer) {
	fmt.Fprint(w, seqClear+seqHome)
}

// Home moves the cursor to the top left without clearing
func Home(w io.Writer) {
	fmt.Fprint(w, seqHome)
}

// ClearLine erases from the cursor to the end of the line
func ClearLine() string {
	return seqClearLine
}

// HideCursor hides the cursor
func HideCursor(w io.Writer) {
	fmt.Fprint(w, seqHideCursor)
}

// ShowCursor shows the cursor
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, seqShowCursor)
}
