package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/kk-code-lab/rctx/internal/collection"
	"github.com/kk-code-lab/rctx/internal/config"
	"github.com/kk-code-lab/rctx/internal/export"
	fsutil "github.com/kk-code-lab/rctx/internal/fs"
	"github.com/kk-code-lab/rctx/internal/pathname"
	statepkg "github.com/kk-code-lab/rctx/internal/state"
	inputui "github.com/kk-code-lab/rctx/internal/ui/input"
	renderui "github.com/kk-code-lab/rctx/internal/ui/render"
)

// Options describes the session the application starts with.
type Options struct {
	StartDir   string
	RepoRoot   string            // empty outside a repository
	Classifier fsutil.Classifier // nil outside a repository
	Config     *config.Config
	Logger     *zap.Logger
	// Clipboard defaults to the platform clipboard command.
	Clipboard *export.CommandClipboard
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	clipboard  export.Clipboard
	logger     *zap.Logger
	shouldQuit bool

	lastClickIndex int
	lastClickTime  time.Time
}

// Close cleans up resources.
func (app *Application) Close() error {
	close(app.actionCh)
	app.screen.Fini()
	return nil
}

// State exposes the live state for callers that report on exit.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

func newInitialState(opts Options, clipboardAvail bool) *statepkg.AppState {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	namer := pathname.Namer{RepoRoot: opts.RepoRoot, StartDir: opts.StartDir}
	return &statepkg.AppState{
		CurrentPath:        opts.StartDir,
		StartDir:           opts.StartDir,
		RepoRoot:           opts.RepoRoot,
		Files:              []statepkg.FileEntry{},
		ShowHidden:         cfg.ShowHidden,
		ShowIgnored:        cfg.ShowIgnored,
		Classifier:         opts.Classifier,
		Collection:         collection.NewCollector(namer, logger),
		MessageTimeout:     cfg.MessageTimeout,
		ClipboardAvailable: clipboardAvail,
		TreeDepth:          cfg.TreeDepth,
		Logger:             logger,
	}
}
