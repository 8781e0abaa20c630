package ebiten

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/gameplay"
	"hexpop/pkg/game/renderer"
	"hexpop/pkg/game/renderer/palette"
)

var (
	colorWall    = color.RGBA{R: 0x3c, G: 0x3c, B: 0x50, A: 0xff}
	colorSubtle  = color.RGBA{R: 0x78, G: 0x82, B: 0xb4, A: 0xff}
	colorAction  = color.RGBA{R: 0xb4, G: 0x96, B: 0xfa, A: 0xff}
	colorMessage = color.RGBA{R: 0xc8, G: 0xd2, B: 0xf5, A: 0xff}
)

// Draw renders the game to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(palette.Background)
	if e.session == nil {
		return
	}
	v := e.view
	vp := e.viewport(v)

	e.drawBoard(screen, v, vp)
	e.drawAim(screen, v, vp)
	e.drawHeader(screen, v)
	e.drawFooter(screen, v)
}

// drawBoard draws the board background, the walls, the lose line and every bubble
func (e *EbitenRenderer) drawBoard(screen *ebiten.Image, v gameplay.View, vp renderer.Viewport) {
	half := v.Layout.CellSize / 2
	x0, y0 := vp.ToScreen(r2.Vec{X: v.MinX - half, Y: v.Layout.Origin.Y - half})
	x1, y1 := vp.ToScreen(r2.Vec{X: v.MaxX + half, Y: v.Origin.Y + half})
	vector.FillRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), palette.Board, false)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x0), float32(y1), 2, colorWall, false)
	vector.StrokeLine(screen, float32(x1), float32(y0), float32(x1), float32(y1), 2, colorWall, false)

	_, ly := vp.ToScreen(r2.Vec{X: 0, Y: v.LoseLineY})
	vector.StrokeLine(screen, float32(x0), float32(ly), float32(x1), float32(ly), 2, palette.LoseLine, true)

	radius := float32(half*vp.Scale) - 1
	for _, b := range v.Bubbles {
		x, y := vp.ToScreen(b.World)
		e.drawBubble(screen, float32(x), float32(y), radius, b.Color)
	}
}

func (e *EbitenRenderer) drawBubble(screen *ebiten.Image, x, y, radius float32, c world.Color) {
	vector.FillCircle(screen, x, y, radius, palette.RGBA(c), true)
	vector.StrokeCircle(screen, x, y, radius, 1, color.RGBA{A: 0x80}, true)
}

// drawAim draws the traced shot path and the launcher with its queue
func (e *EbitenRenderer) drawAim(screen *ebiten.Image, v gameplay.View, vp renderer.Viewport) {
	if v.Aim.OK {
		for i := 1; i < len(v.Aim.Path); i++ {
			ax, ay := vp.ToScreen(v.Aim.Path[i-1])
			bx, by := vp.ToScreen(v.Aim.Path[i])
			vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, palette.Aim, true)
		}
	}

	radius := float32(v.Layout.CellSize/2*vp.Scale) - 1
	ox, oy := vp.ToScreen(v.Origin)
	e.drawBubble(screen, float32(ox), float32(oy), radius, v.Current)

	nx, ny := vp.ToScreen(r2.Vec{X: v.Origin.X + 1.5*v.Layout.CellSize, Y: v.Origin.Y})
	e.drawBubble(screen, float32(nx), float32(ny), radius*0.7, v.Next)
}

func (e *EbitenRenderer) drawHeader(screen *ebiten.Image, v gameplay.View) {
	e.drawText(screen, renderer.StatusLine(v), boardMargin, 12, colorAction, e.getBoldFontFace())
	e.drawText(screen, renderer.QueueLine(v), boardMargin, 12+e.getUIFontSize()*1.6, colorSubtle, e.getSansFontFace())
}

func (e *EbitenRenderer) drawFooter(screen *ebiten.Image, v gameplay.View) {
	face := e.getSansFontFace()
	lineHeight := face.Size * 1.4
	y := float64(e.windowHeight-footerHeight) + 8

	if banner := renderer.Banner(v); banner != "" {
		e.drawText(screen, banner, boardMargin, y, palette.LoseLine, e.getBoldFontFace())
		y += lineHeight
	}
	msgs := renderer.Messages(v)
	if len(msgs) > 3 {
		msgs = msgs[len(msgs)-3:]
	}
	for _, msg := range msgs {
		e.drawText(screen, msg, boardMargin, y, colorMessage, face)
		y += lineHeight
	}

	help := strings.TrimSpace(renderer.HelpLine())
	e.drawText(screen, help, boardMargin, float64(e.windowHeight)-lineHeight-4, colorSubtle, e.getMonoFontFace())
}

// drawText draws str with its top left corner at x, y
func (e *EbitenRenderer) drawText(screen *ebiten.Image, str string, x, y float64, col color.Color, face *text.GoTextFace) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, face, op)
}
