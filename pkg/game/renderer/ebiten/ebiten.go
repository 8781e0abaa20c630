// Package ebiten provides an Ebiten-based 2D graphical renderer for hexpop.
package ebiten

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"hexpop/pkg/game/gameplay"
	"hexpop/pkg/game/state"
)

// Window and layout sizes in pixels
const (
	defaultWindowWidth  = 640
	defaultWindowHeight = 860
	boardMargin         = 16
	headerHeight        = 64
	footerHeight        = 140
	baseFontSize        = 16.0
)

// keyRepeatInfo tracks the repeat state for a key or button
type keyRepeatInfo struct {
	firstPressed int64 // milliseconds
	lastRepeat   int64 // milliseconds
}

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	windowWidth  int
	windowHeight int
	logger       *slog.Logger

	// Font sources for text rendering
	monoFontSource *text.GoTextFaceSource
	sansFontSource *text.GoTextFaceSource
	boldFontSource *text.GoTextFaceSource

	// Cached font faces
	cachedUIFontSize float64
	cachedSansFace   *text.GoTextFace
	cachedMonoFace   *text.GoTextFace
	cachedBoldFace   *text.GoTextFace

	// Set by Run
	ctx     context.Context
	session *gameplay.Session
	view    gameplay.View

	keyRepeatState     map[string]keyRepeatInfo
	lastCursorX        int
	lastCursorY        int
	quit               bool
	windowOpenedLogged bool
}

// New creates a new Ebiten renderer
func New(logger *slog.Logger) *EbitenRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &EbitenRenderer{
		windowWidth:    defaultWindowWidth,
		windowHeight:   defaultWindowHeight,
		logger:         logger.With("component", "ebiten"),
		keyRepeatState: make(map[string]keyRepeatInfo),
	}
}

// Name returns "ebiten"
func (e *EbitenRenderer) Name() string {
	return "ebiten"
}

// Init loads fonts and sets up the window
func (e *EbitenRenderer) Init() error {
	if err := e.loadFonts(); err != nil {
		return err
	}
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle("hexpop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

// Run opens the window and blocks until it is closed, the player quits or
// ctx is done. The game steps on its own goroutine.
func (e *EbitenRenderer) Run(ctx context.Context, s *gameplay.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	e.ctx = ctx
	e.session = s
	e.view = s.View()

	go func() {
		if err := s.Game().Run(ctx, state.DefaultTick); err != nil && ctx.Err() == nil {
			e.logger.Error("game loop stopped", "err", err)
		}
	}()

	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Close is a no-op; Ebiten releases the window when RunGame returns
func (e *EbitenRenderer) Close() error {
	return nil
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.windowWidth || outsideHeight != e.windowHeight {
		e.windowWidth = outsideWidth
		e.windowHeight = outsideHeight
	}
	return outsideWidth, outsideHeight
}
