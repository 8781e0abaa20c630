package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFonts parses the Go fonts bundled with x/image
func (e *EbitenRenderer) loadFonts() error {
	var err error
	if e.monoFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("loading mono font: %w", err)
	}
	if e.sansFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("loading sans font: %w", err)
	}
	if e.boldFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		return fmt.Errorf("loading bold font: %w", err)
	}
	return nil
}

// getUIFontSize scales the base font with the window width
func (e *EbitenRenderer) getUIFontSize() float64 {
	size := baseFontSize * float64(e.windowWidth) / defaultWindowWidth
	if size < 10 {
		size = 10
	}
	if size > 28 {
		size = 28
	}
	return size
}

// refreshFaces rebuilds the cached faces when the UI font size changes
func (e *EbitenRenderer) refreshFaces() {
	size := e.getUIFontSize()
	if e.cachedSansFace != nil && e.cachedUIFontSize == size {
		return
	}
	e.cachedUIFontSize = size
	e.cachedSansFace = &text.GoTextFace{Source: e.sansFontSource, Size: size}
	e.cachedMonoFace = &text.GoTextFace{Source: e.monoFontSource, Size: size}
	e.cachedBoldFace = &text.GoTextFace{Source: e.boldFontSource, Size: size + 2}
}

// getSansFontFace returns the face for UI text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	e.refreshFaces()
	return e.cachedSansFace
}

// getMonoFontFace returns the face for the help line
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	e.refreshFaces()
	return e.cachedMonoFace
}

// getBoldFontFace returns the face for the header and banner
func (e *EbitenRenderer) getBoldFontFace() *text.GoTextFace {
	e.refreshFaces()
	return e.cachedBoldFace
}
