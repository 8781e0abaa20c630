package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "hexpop/pkg/engine/input"
	"hexpop/pkg/game/gameplay"
	"hexpop/pkg/game/renderer"
)

const (
	keyRepeatInitialDelay = 250 // milliseconds before the first repeat
	keyRepeatInterval     = 40  // milliseconds between repeats
)

// keyBinding maps an Ebiten key to the raw code the bindings table uses.
// Held keys repeat when repeat is set.
type keyBinding struct {
	key    ebiten.Key
	code   string
	repeat bool
}

var keyBindings = []keyBinding{
	{ebiten.KeyArrowLeft, "arrow_left", true},
	{ebiten.KeyArrowRight, "arrow_right", true},
	{ebiten.KeyH, "h", true},
	{ebiten.KeyL, "l", true},
	{ebiten.KeyArrowUp, "arrow_up", false},
	{ebiten.KeyArrowDown, "arrow_down", false},
	{ebiten.KeySpace, "space", false},
	{ebiten.KeyEnter, "enter", false},
	{ebiten.KeyW, "w", false},
	{ebiten.KeyK, "k", false},
	{ebiten.KeyTab, "tab", false},
	{ebiten.KeyS, "s", false},
	{ebiten.KeyJ, "j", false},
	{ebiten.KeyQ, "q", false},
	{ebiten.KeyEscape, "escape", false},
	{ebiten.KeyR, "r", false},
	{ebiten.KeyF5, "f5", false},
	{ebiten.KeyP, "p", false},
	{ebiten.KeyF8, "f8", false},
	{ebiten.KeyF9, "f9", false},
	{ebiten.KeyC, "c", false},
}

// gamepadBindings maps standard gamepad buttons to raw codes
var gamepadBindings = []struct {
	button ebiten.StandardGamepadButton
	code   string
	repeat bool
}{
	{ebiten.StandardGamepadButtonLeftLeft, "gamepad_dpad_left", true},
	{ebiten.StandardGamepadButtonLeftRight, "gamepad_dpad_right", true},
	{ebiten.StandardGamepadButtonRightBottom, "gamepad_a", false},
	{ebiten.StandardGamepadButtonRightLeft, "gamepad_x", false},
	{ebiten.StandardGamepadButtonRightRight, "gamepad_b", false},
	{ebiten.StandardGamepadButtonCenterRight, "gamepad_start", false},
}

// Update handles input (Ebiten interface). Game logic steps on its own
// goroutine; Update only turns input into intents.
func (e *EbitenRenderer) Update() error {
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.logger.Info("window opened", "width", w, "height", h)
	}
	if e.quit || e.ctx.Err() != nil {
		return ebiten.Termination
	}

	for _, intent := range e.pendingIntents() {
		if gameplay.ProcessIntent(e.session, intent) {
			e.quit = true
			return ebiten.Termination
		}
	}
	e.handleMouse()

	e.view = e.session.View()
	return nil
}

// pendingIntents collects this frame's keyboard and gamepad intents
func (e *EbitenRenderer) pendingIntents() []engineinput.Intent {
	var intents []engineinput.Intent
	add := func(code string) {
		intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
			Device: engineinput.DeviceKeyboard,
			Code:   code,
		}))
		if intent.Action != engineinput.ActionNone {
			intents = append(intents, intent)
		}
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for _, b := range keyBindings {
		code := b.code
		if shift && (b.key == ebiten.KeyArrowLeft || b.key == ebiten.KeyArrowRight) {
			// Shift+arrow aims in fine steps, like A and D in the terminal
			if b.key == ebiten.KeyArrowLeft {
				code = "A"
			} else {
				code = "D"
			}
		}
		if b.repeat {
			key := b.key
			if e.shouldRepeatKey(func() bool { return ebiten.IsKeyPressed(key) }, "key_"+b.code) {
				add(code)
			}
			continue
		}
		if inpututil.IsKeyJustPressed(b.key) {
			add(code)
		}
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range gamepadBindings {
			if b.repeat {
				gid, button := id, b.button
				if e.shouldRepeatKey(func() bool { return ebiten.IsStandardGamepadButtonPressed(gid, button) }, b.code) {
					add(b.code)
				}
				continue
			}
			if inpututil.IsStandardGamepadButtonJustPressed(id, b.button) {
				add(b.code)
			}
		}
	}
	return intents
}

// handleMouse aims at the cursor when it moves and fires on a left click
func (e *EbitenRenderer) handleMouse() {
	x, y := ebiten.CursorPosition()
	moved := x != e.lastCursorX || y != e.lastCursorY
	e.lastCursorX, e.lastCursorY = x, y

	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if !moved && !clicked {
		return
	}

	vp := e.viewport(e.view)
	e.session.AimAt(vp.ToWorld(float64(x), float64(y)))
	if clicked {
		gameplay.ProcessIntent(e.session, engineinput.Intent{Action: engineinput.ActionFire})
	}
}

func (e *EbitenRenderer) viewport(v gameplay.View) renderer.Viewport {
	return renderer.Fit(v, e.windowWidth, e.windowHeight, boardMargin, headerHeight, footerHeight)
}

// shouldRepeatKey reports whether a held key should fire this frame: once on
// press, then every keyRepeatInterval after keyRepeatInitialDelay
func (e *EbitenRenderer) shouldRepeatKey(isPressed func() bool, code string) bool {
	now := time.Now().UnixMilli()
	state, exists := e.keyRepeatState[code]

	if !isPressed() {
		if exists {
			delete(e.keyRepeatState, code)
		}
		return false
	}

	if !exists {
		e.keyRepeatState[code] = keyRepeatInfo{firstPressed: now, lastRepeat: now}
		return true
	}
	if now-state.firstPressed >= keyRepeatInitialDelay && now-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = now
		e.keyRepeatState[code] = state
		return true
	}
	return false
}
