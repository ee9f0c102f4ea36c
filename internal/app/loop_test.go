package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rctx/internal/config"
	"github.com/kk-code-lab/rctx/internal/export"
	statepkg "github.com/kk-code-lab/rctx/internal/state"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) Copy(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func newTestApp(t *testing.T, root string) (*Application, *fakeClipboard) {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(scr.Fini)
	scr.SetSize(80, 24)

	cfg := config.DefaultConfig()
	cfg.TreeDepth = 2
	app, err := newApplicationWithScreen(scr, Options{
		StartDir:  root,
		Config:    cfg,
		Clipboard: export.NewCommandClipboard(nil, false, nil),
	})
	if err != nil {
		t.Fatalf("newApplicationWithScreen: %v", err)
	}

	clip := &fakeClipboard{}
	app.clipboard = clip
	return app, clip
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestNewApplicationLoadsStartDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	writeFile(t, filepath.Join(root, ".env"), "SECRET=1\n")

	app, _ := newTestApp(t, root)
	state := app.State()

	if state.CurrentPath != root || state.StartDir != root {
		t.Fatalf("expected session rooted at %s, got current=%s start=%s", root, state.CurrentPath, state.StartDir)
	}
	if len(state.Files) != 1 || state.Files[0].Name != "main.go" {
		t.Fatalf("expected only main.go with hidden files off, got %+v", state.Files)
	}
	if state.ClipboardAvailable {
		t.Fatalf("clipboard without a command should be reported unavailable")
	}
	if state.TreeDepth != 2 || state.MessageTimeout != config.DefaultConfig().MessageTimeout {
		t.Fatalf("config not applied: depth=%d timeout=%s", state.TreeDepth, state.MessageTimeout)
	}
	if state.ScreenWidth != 80 || state.ScreenHeight != 24 {
		t.Fatalf("expected screen size 80x24, got %dx%d", state.ScreenWidth, state.ScreenHeight)
	}
}

func TestNewApplicationFailsForMissingDirectory(t *testing.T) {
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer scr.Fini()

	_, err := newApplicationWithScreen(scr, Options{
		StartDir:  filepath.Join(t.TempDir(), "missing"),
		Clipboard: export.NewCommandClipboard(nil, false, nil),
	})
	if err == nil {
		t.Fatalf("expected error for missing start directory")
	}
}

func TestCopyCollectionEmpty(t *testing.T) {
	app, clip := newTestApp(t, t.TempDir())

	app.handleAction(statepkg.CopyCollectionAction{})

	msg := app.state.Message
	if msg == nil || msg.Kind != statepkg.MessageError || msg.Text != "Collection is empty" {
		t.Fatalf("expected empty collection error, got %+v", msg)
	}
	if clip.text != "" {
		t.Fatalf("nothing should be copied, got %q", clip.text)
	}
}

func TestCopyCollectionWritesMarkdown(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	app, clip := newTestApp(t, root)

	app.handleAction(statepkg.CollectCurrentAction{})
	app.handleAction(statepkg.CopyCollectionAction{})

	if !strings.Contains(clip.text, "main.go") || !strings.Contains(clip.text, "package main") {
		t.Fatalf("expected markdown with collected file, got %q", clip.text)
	}
	want := copiedCollectionMessage(1, len(clip.text))
	if app.state.Message == nil || app.state.Message.Text != want {
		t.Fatalf("expected %q, got %+v", want, app.state.Message)
	}
	if !strings.HasPrefix(want, "Copied 1 files (") || !strings.HasSuffix(want, ") to clipboard!") {
		t.Fatalf("unexpected message format %q", want)
	}
}

func TestCopyReportsClipboardErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	app, clip := newTestApp(t, root)
	app.handleAction(statepkg.CollectCurrentAction{})

	clip.err = errors.New("xclip: exit status 1")
	app.handleAction(statepkg.CopyCollectionAction{})
	if msg := app.state.Message; msg == nil || msg.Text != "Clipboard error: xclip: exit status 1" {
		t.Fatalf("expected clipboard error, got %+v", msg)
	}

	clip.err = export.ErrClipboardUnavailable
	app.handleAction(statepkg.CopyTreeAction{})
	if msg := app.state.Message; msg == nil || msg.Text != "Clipboard is not available on this system" {
		t.Fatalf("expected unavailable clipboard message, got %+v", msg)
	}
}

func TestCopyTreeUsesCurrentDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "lib.go"), "package src\n")
	writeFile(t, filepath.Join(root, "README.md"), "# hi\n")
	app, clip := newTestApp(t, root)

	app.handleAction(statepkg.CopyTreeAction{})

	want := ".\n├── src/\n│   └── lib.go\n└── README.md\n"
	if clip.text != want {
		t.Fatalf("tree mismatch\nwant: %q\n got: %q", want, clip.text)
	}
	if msg := app.state.Message; msg == nil || msg.Text != copiedTreeMessage(len(want)) {
		t.Fatalf("expected tree copy message, got %+v", msg)
	}
}

type bogusAction struct{}

func TestReducerErrorsBecomeMessages(t *testing.T) {
	app, _ := newTestApp(t, t.TempDir())

	if !app.handleAction(bogusAction{}) {
		t.Fatalf("expected rerender after failed action")
	}
	if msg := app.state.Message; msg == nil || msg.Kind != statepkg.MessageError || !strings.Contains(msg.Text, "unknown action") {
		t.Fatalf("expected reducer error as message, got %+v", msg)
	}
}

func TestQuitActionStopsLoop(t *testing.T) {
	app, _ := newTestApp(t, t.TempDir())

	if app.handleAction(statepkg.QuitAction{}) {
		t.Fatalf("quit should not request a render")
	}
	if !app.shouldQuit {
		t.Fatalf("expected shouldQuit after QuitAction")
	}
}

func TestMessageRemaining(t *testing.T) {
	app, _ := newTestApp(t, t.TempDir())
	now := time.Now()

	if _, ok := app.messageRemaining(now); ok {
		t.Fatalf("no message should mean no expiry")
	}

	app.state.Message = &statepkg.Message{Text: "hi", Created: now, Timeout: 3 * time.Second}
	if d, ok := app.messageRemaining(now.Add(time.Second)); !ok || d != 2*time.Second {
		t.Fatalf("expected 2s remaining, got %s (ok=%v)", d, ok)
	}
	if d, ok := app.messageRemaining(now.Add(time.Minute)); !ok || d != 0 {
		t.Fatalf("expected immediate expiry, got %s (ok=%v)", d, ok)
	}
}
