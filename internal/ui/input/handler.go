package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rctx/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the event asked the application to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	helpVisible := ih.state != nil && ih.state.HelpVisible

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
			return true
		case tcell.KeyRune:
			r := ev.Rune()
			if r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
			return true
		default:
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
		return true

	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
		return true

	case tcell.KeyEnter, tcell.KeyRight:
		ih.actionChan <- statepkg.EnterDirectoryAction{}
		return true

	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.GoUpAction{}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
		return true

	case tcell.KeyHome:
		ih.actionChan <- statepkg.ScrollToStartAction{}
		return true

	case tcell.KeyEnd:
		ih.actionChan <- statepkg.ScrollToEndAction{}
		return true

	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return true
		}
		return ih.processRune(ev.Rune())

	default:
		return true
	}
}

// processRune maps single-character commands. Case matters: lowercase keys
// act on the selection, uppercase ones on the whole directory or collection.
func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case '?':
		ih.actionChan <- statepkg.HelpToggleAction{}
	case 'h':
		ih.actionChan <- statepkg.ToggleHiddenFilesAction{}
	case 'g':
		if ih.state != nil && ih.state.InRepository() {
			ih.actionChan <- statepkg.ToggleIgnoredFilesAction{}
		}
	case '~':
		ih.actionChan <- statepkg.GoToStartAction{}
	case 'G':
		ih.actionChan <- statepkg.GoToRepoRootAction{}

	case 'a':
		ih.actionChan <- statepkg.CollectCurrentAction{}
	case 'A':
		ih.actionChan <- statepkg.CollectAllAction{}
	case 'd':
		ih.actionChan <- statepkg.UncollectCurrentAction{}
	case 'D':
		ih.actionChan <- statepkg.ClearCollectionAction{}
	case 'r':
		ih.actionChan <- statepkg.SyncCollectionAction{}

	case 'S':
		ih.actionChan <- statepkg.SaveCollectionAction{}
	case 'C':
		ih.actionChan <- statepkg.CopyCollectionAction{}
	case 't':
		ih.actionChan <- statepkg.SaveTreeAction{}
	case 'c':
		ih.actionChan <- statepkg.CopyTreeAction{}
	}
	return true
}
