package export

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// ErrClipboardUnavailable means no clipboard command was found.
var ErrClipboardUnavailable = errors.New("clipboard is not available on this system")

// Clipboard receives exported text.
type Clipboard interface {
	Copy(text string) error
}

// CommandClipboard pipes text into a platform clipboard command.
//
// On X11 and Wayland the command is started from a detached goroutine that
// nobody waits for: selection owners such as xclip linger until another
// program takes the selection. Failures there are only logged.
type CommandClipboard struct {
	argv     []string
	detached bool
	run      func(argv []string, text string) error
	logger   *zap.Logger
}

// DetectClipboard finds a clipboard command for the running platform.
func DetectClipboard(logger *zap.Logger) *CommandClipboard {
	argv, _ := detectClipboardCommand(runtime.GOOS, exec.LookPath)
	return NewCommandClipboard(argv, detachesClipboard(runtime.GOOS), logger)
}

// NewCommandClipboard wraps argv. An empty argv yields a clipboard whose Copy
// always returns ErrClipboardUnavailable.
func NewCommandClipboard(argv []string, detached bool, logger *zap.Logger) *CommandClipboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandClipboard{
		argv:     argv,
		detached: detached,
		run:      runClipboardCommand,
		logger:   logger.Named("clipboard"),
	}
}

// Available reports whether a command was found.
func (c *CommandClipboard) Available() bool {
	return c != nil && len(c.argv) > 0
}

// Command returns the base name of the clipboard program, or "".
func (c *CommandClipboard) Command() string {
	if !c.Available() {
		return ""
	}
	return filepath.Base(c.argv[0])
}

// Copy hands text to the clipboard command.
func (c *CommandClipboard) Copy(text string) error {
	if !c.Available() {
		return ErrClipboardUnavailable
	}
	if !c.detached {
		return c.run(c.argv, text)
	}

	argv := append([]string(nil), c.argv...)
	go func() {
		if err := c.run(argv, text); err != nil {
			c.logger.Warn("clipboard write failed", zap.String("command", argv[0]), zap.Error(err))
		}
	}()
	return nil
}

func runClipboardCommand(argv []string, text string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", filepath.Base(argv[0]), err, msg)
		}
		return fmt.Errorf("%s: %w", filepath.Base(argv[0]), err)
	}
	return nil
}

func detachesClipboard(goos string) bool {
	switch strings.ToLower(goos) {
	case "darwin", "windows":
		return false
	default:
		return true
	}
}

func detectClipboardCommand(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	type candidate struct {
		name string
		args []string
	}

	var candidates []candidate
	switch strings.ToLower(goos) {
	case "windows":
		candidates = []candidate{
			{"clip.exe", nil},
			{"clip", nil},
			{"powershell.exe", []string{"-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}},
			{"pwsh", []string{"-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}},
		}
	case "darwin":
		candidates = []candidate{{"pbcopy", nil}}
	default:
		candidates = []candidate{
			{"xclip", []string{"-selection", "clipboard"}},
			{"wl-copy", nil},
			{"xsel", []string{"--clipboard", "--input"}},
		}
	}

	for _, c := range candidates {
		if path, err := lookPath(c.name); err == nil && path != "" {
			return append([]string{path}, c.args...), true
		}
	}
	return nil, false
}
