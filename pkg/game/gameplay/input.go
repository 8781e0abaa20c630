package gameplay

import (
	"errors"

	engineinput "hexpop/pkg/engine/input"
	"hexpop/pkg/game/devtools"
	"hexpop/pkg/game/state"
)

// fineAimDivisor scales an aim step down for the fine aim actions
const fineAimDivisor = 4

// ProcessIntent handles a high-level input intent. Returns true when the
// player asked to quit.
func ProcessIntent(s *Session, intent engineinput.Intent) bool {
	switch intent.Action {
	case engineinput.ActionNone:
		return false

	case engineinput.ActionQuit:
		return true

	case engineinput.ActionAimLeft:
		s.Aim(-1)

	case engineinput.ActionAimRight:
		s.Aim(1)

	case engineinput.ActionAimFineLeft:
		s.SetAngle(s.Angle() - s.aimStep/fineAimDivisor)

	case engineinput.ActionAimFineRight:
		s.SetAngle(s.Angle() + s.aimStep/fineAimDivisor)

	case engineinput.ActionSwap:
		s.queue.Swap()

	case engineinput.ActionFire:
		pos, err := s.Fire()
		switch {
		case err == nil:
			s.logger.Debug("fired", "pos", pos)
		case errors.Is(err, state.ErrBusy), errors.Is(err, state.ErrInactive):
			// Ignored until the board settles or is reset
		case errors.Is(err, ErrShotLost):
			s.game.AddMessage("SHOT_LOST")
		default:
			s.logger.Warn("fire failed", "err", err)
		}

	case engineinput.ActionResetLevel:
		s.Reset()
		s.game.AddMessage("LEVEL_RESET")

	case engineinput.ActionSpawnRow:
		if !s.game.SpawnRow() {
			s.game.AddMessage("ROW_DEFERRED")
		}

	case engineinput.ActionDumpGrid:
		path, err := devtools.DumpGridToFile(s.game, s.OutputDir)
		if err != nil {
			s.logger.Error("grid dump failed", "err", err)
			s.game.AddMessage("DUMP_FAILED")
			break
		}
		s.logger.Info("grid dumped", "path", path)
		s.game.AddMessage("GRID_DUMPED")

	case engineinput.ActionCopyGrid:
		if err := devtools.CopyGridToClipboard(s.game); err != nil {
			s.logger.Warn("clipboard copy failed", "err", err)
			s.game.AddMessage("CLIPBOARD_FAILED")
			break
		}
		s.game.AddMessage("GRID_COPIED")

	case engineinput.ActionScreenshot:
		path, err := devtools.SaveScreenshotHTML(s.game.Snapshot(), s.OutputDir)
		if err != nil {
			s.logger.Error("screenshot failed", "err", err)
			break
		}
		s.logger.Info("screenshot saved", "path", path)
		s.game.AddMessage("SCREENSHOT_SAVED")
	}
	return false
}
