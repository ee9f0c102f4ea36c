//go:build !windows

package app

import (
	"os"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

func resumeSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}

// stopForShell hands the terminal back and stops only this process, so a
// shell `fg` works even when rctx runs under a wrapper script.
func (app *Application) stopForShell() {
	if err := app.screen.Suspend(); err != nil {
		app.logger.Warn("suspend screen", zap.Error(err))
		return
	}
	_ = syscall.Kill(os.Getpid(), syscall.SIGTSTP)
}

// reattach reclaims the terminal after SIGCONT and reports whether a
// redraw is needed.
func (app *Application) reattach() bool {
	if err := app.screen.Resume(); err != nil {
		app.logger.Warn("resume screen", zap.Error(err))
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.state.ScreenWidth, app.state.ScreenHeight = w, h
	}
	_ = app.screen.PostEvent(tcell.NewEventInterrupt(nil))
	return true
}
