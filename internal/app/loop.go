package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/kk-code-lab/rctx/internal/collection"
	"github.com/kk-code-lab/rctx/internal/export"
	statepkg "github.com/kk-code-lab/rctx/internal/state"
	"github.com/kk-code-lab/rctx/internal/ui/input"
	renderui "github.com/kk-code-lab/rctx/internal/ui/render"
)

const doubleClickThreshold = 300 * time.Millisecond

// NewApplication initialises the terminal and loads the start directory.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	app, err := newApplicationWithScreen(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplicationWithScreen(screen tcell.Screen, opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clipboard := opts.Clipboard
	if clipboard == nil {
		clipboard = export.DetectClipboard(logger)
	}

	state := newInitialState(opts, clipboard.Available())
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	if err := statepkg.LoadDirectory(state); err != nil {
		return nil, err
	}

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := input.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	logger.Info("session started",
		zap.String("path", state.StartDir),
		zap.String("repo", state.RepoRoot),
		zap.String("clipboard", clipboard.Command()),
	)

	return &Application{
		screen:         screen,
		state:          state,
		reducer:        statepkg.NewStateReducer(),
		renderer:       renderui.NewRenderer(screen),
		input:          inputHandler,
		actionCh:       actionCh,
		clipboard:      clipboard,
		logger:         logger,
		lastClickIndex: -1,
	}, nil
}

// Run drives the event loop until a quit action arrives.
func (app *Application) Run() {
	defer func() {
		app.screen.Fini()
		if err := flushConsoleInput(); err != nil {
			app.logger.Debug("console input flush failed", zap.Error(err))
		}
	}()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	var sigContCh chan os.Signal
	if sigs := resumeSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var expiryTimer *time.Timer
	var expiryCh <-chan time.Time

	armExpiry := func(d time.Duration) {
		if expiryTimer == nil {
			expiryTimer = time.NewTimer(d)
		} else {
			if !expiryTimer.Stop() {
				select {
				case <-expiryTimer.C:
				default:
				}
			}
			expiryTimer.Reset(d)
		}
		expiryCh = expiryTimer.C
	}

	disarmExpiry := func() {
		if expiryTimer == nil {
			return
		}
		if !expiryTimer.Stop() {
			select {
			case <-expiryTimer.C:
			default:
			}
		}
		expiryCh = nil
	}

	for !app.shouldQuit {
		if app.state.ExpireMessage(time.Now()) {
			renderPending = true
		}
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		if remaining, ok := app.messageRemaining(time.Now()); ok {
			armExpiry(remaining)
		} else {
			disarmExpiry()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-expiryCh:
			expiryCh = nil
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.reattach() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	disarmExpiry()
	app.logger.Info("session ended", zap.Int("collected", app.state.CollectionCount()))
}

// messageRemaining reports how long the current message stays visible.
func (app *Application) messageRemaining(now time.Time) (time.Duration, bool) {
	msg := app.state.Message
	if msg == nil {
		return 0, false
	}
	remaining := msg.Created.Add(msg.Timeout).Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		app.screen.Sync()
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		if !app.handleMouse(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps primary-clicks to selection; a double click enters.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if app.state == nil || app.state.HelpVisible {
		return true
	}

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		app.actionCh <- statepkg.NavigateUpAction{}
		return true
	case ev.Buttons()&tcell.WheelDown != 0:
		app.actionCh <- statepkg.NavigateDownAction{}
		return true
	case ev.Buttons()&tcell.Button1 == 0:
		return true
	}

	_, y := ev.Position()
	idx := renderui.ListRowToIndex(app.state, y, app.state.ScreenHeight)
	if idx < 0 {
		return true
	}

	doubleClick := app.lastClickIndex == idx && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickIndex = idx
	app.lastClickTime = time.Now()

	app.actionCh <- statepkg.MouseSelectAction{Index: idx}
	if doubleClick {
		app.actionCh <- statepkg.EnterDirectoryAction{}
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.stopForShell()
		return true
	case statepkg.CopyCollectionAction:
		return app.copyCollection()
	case statepkg.CopyTreeAction:
		return app.copyTree()
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Warn("action failed", zap.String("action", fmt.Sprintf("%T", action)), zap.Error(err))
		app.state.SetErrorMessage(err.Error())
	}
	return true
}

func (app *Application) copyCollection() bool {
	markdown, ok := app.state.CollectionMarkdown()
	if !ok {
		app.state.SetErrorMessage("Collection is empty")
		return true
	}
	if err := app.clipboard.Copy(markdown); err != nil {
		app.logger.Warn("copy collection failed", zap.Error(err))
		app.state.SetErrorMessage(statepkg.ClipboardErrorMessage(err))
		return true
	}

	app.logger.Info("copied collection",
		zap.Int("files", app.state.CollectionCount()),
		zap.Int("bytes", len(markdown)),
	)
	app.state.SetSuccessMessage(copiedCollectionMessage(app.state.CollectionCount(), len(markdown)))
	return true
}

func (app *Application) copyTree() bool {
	tree, err := app.state.TreeText()
	if err != nil {
		app.state.SetErrorMessage(fmt.Sprintf("Failed to generate tree: %v", err))
		return true
	}
	if err := app.clipboard.Copy(tree); err != nil {
		app.logger.Warn("copy tree failed", zap.Error(err))
		app.state.SetErrorMessage(statepkg.ClipboardErrorMessage(err))
		return true
	}

	app.logger.Info("copied tree", zap.String("path", app.state.CurrentPath), zap.Int("bytes", len(tree)))
	app.state.SetSuccessMessage(copiedTreeMessage(len(tree)))
	return true
}

func copiedCollectionMessage(files, bytes int) string {
	return fmt.Sprintf("Copied %d files (%s) to clipboard!", files, collection.FormatSize(int64(bytes)))
}

func copiedTreeMessage(bytes int) string {
	return fmt.Sprintf("Tree (%s) copied to clipboard!", collection.FormatSize(int64(bytes)))
}
