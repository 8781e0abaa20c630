// Package renderer holds what the display backends share: the Renderer
// interface and the text every frame shows.
package renderer

import (
	"context"

	"hexpop/pkg/game/gameplay"
)

// Renderer defines the interface for display backends. Implementations
// include the terminal TUI and the Ebiten window.
type Renderer interface {
	// Name identifies the backend on the command line
	Name() string

	// Init prepares the backend (terminal modes, fonts, window)
	Init() error

	// Run drives s until the player quits or ctx is done. The backend owns
	// input and drawing; the game steps on its own clock.
	Run(ctx context.Context, s *gameplay.Session) error

	// Close releases whatever Init acquired
	Close() error
}
