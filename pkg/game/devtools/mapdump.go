// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/generator"
	"hexpop/pkg/game/state"
)

const gridDumpFilename = "grid.txt"

// ErrClipboardUnsupported is returned when no clipboard utility is available
var ErrClipboardUnsupported = errors.New("clipboard unsupported")

// patternRows returns the grid as pattern rows, the format FromPattern reads
func patternRows(g *state.Game) []string {
	var rows []string
	g.WithGrid(func(grid *world.Grid) {
		rows = generator.Dump(grid)
	})
	return rows
}

// writeGridDump writes a debug dump: metadata, the hex view with odd rows
// indented by half a cell, and the raw pattern rows.
func writeGridDump(w io.Writer, snap state.Snapshot, rows []string) {
	fmt.Fprintln(w, "=== GRID DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "width: %d\n", snap.Width)
	fmt.Fprintf(w, "rows: %d\n", len(rows))
	fmt.Fprintf(w, "bubbles: %d\n", len(snap.Bubbles))
	fmt.Fprintf(w, "lowest_row: %d\n", snap.LowestRow)
	fmt.Fprintf(w, "status: %s\n", snap.Status)
	fmt.Fprintf(w, "score: %d\n", snap.Score)
	fmt.Fprintf(w, "shots_left: %d\n", snap.ShotsLeft)
	fmt.Fprintf(w, "lose_line_y: %.3f\n", snap.LoseLineY)
	fmt.Fprintf(w, "coordinate_system: col,row (0-based, odd rows offset right by half a cell)\n")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintln(w, "R = red  B = blue  G = green  Y = yellow  P = purple  C = cyan  . = empty")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Hex view ---")
	for r, line := range rows {
		if r%2 == 1 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Pattern ---")
	for _, line := range rows {
		fmt.Fprintln(w, line)
	}
}

// DumpGridToFile writes a full debug dump of the board to grid.txt in dir
// and returns the absolute path.
func DumpGridToFile(g *state.Game, dir string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, gridDumpFilename))
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("creating grid dump: %w", err)
	}
	defer f.Close()

	writeGridDump(f, g.Snapshot(), patternRows(g))
	return absPath, nil
}

// PatternText returns the board as newline-separated pattern rows
func PatternText(g *state.Game) string {
	return strings.Join(patternRows(g), "\n")
}

// CopyGridToClipboard copies the board's pattern rows to the system clipboard
func CopyGridToClipboard(g *state.Game) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	if err := clipboard.WriteAll(PatternText(g)); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
