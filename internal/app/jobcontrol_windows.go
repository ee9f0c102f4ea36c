//go:build windows

package app

import "os"

// Windows consoles have no job control; Ctrl+Z is ignored.
func resumeSignals() []os.Signal { return nil }

func (app *Application) stopForShell() {}

func (app *Application) reattach() bool { return false }
