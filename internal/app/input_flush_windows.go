//go:build windows

package app

import "golang.org/x/sys/windows"

// flushConsoleInput drops keystrokes still queued in the console so they do
// not reach the shell after exit.
func flushConsoleInput() error {
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return err
	}
	return windows.FlushConsoleInputBuffer(handle)
}
