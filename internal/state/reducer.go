package state

import (
	"fmt"
	"path/filepath"
)

// StateReducer applies actions to AppState.
type StateReducer struct {
	selectionHistory map[string]int // path -> selected index
}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{
		selectionHistory: make(map[string]int),
	}
}

// Reduce applies an action to state and returns the same, mutated state.
// Errors are reserved for directory loads the caller should surface; every
// collection outcome is reported through state.Message instead.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case NavigateDownAction:
		if len(state.Files) == 0 || state.SelectedIndex >= len(state.Files)-1 {
			return state, nil
		}
		if state.SelectedIndex < 0 {
			state.SelectedIndex = 0
		} else {
			state.SelectedIndex++
		}
		state.updateScrollVisibility()
		return state, nil

	case NavigateUpAction:
		if len(state.Files) == 0 || state.SelectedIndex == 0 {
			return state, nil
		}
		if state.SelectedIndex < 0 {
			state.SelectedIndex = len(state.Files) - 1
		} else {
			state.SelectedIndex--
		}
		state.updateScrollVisibility()
		return state, nil

	case EnterDirectoryAction:
		file := state.getCurrentFile()
		if file == nil || !file.IsDir {
			return state, nil
		}

		r.selectionHistory[state.CurrentPath] = state.SelectedIndex

		newPath := filepath.Join(state.CurrentPath, file.Name)
		if err := LoadDirectory(state, newPath); err != nil {
			return state, err
		}
		if savedIdx, ok := r.selectionHistory[newPath]; ok && savedIdx < len(state.Files) {
			state.SelectedIndex = savedIdx
		}
		state.centerScrollOnSelection()
		return state, nil

	case GoUpAction:
		currentPath := state.CurrentPath
		parent := filepath.Dir(currentPath)
		if parent == currentPath {
			return state, nil // Already at root
		}

		r.selectionHistory[state.CurrentPath] = state.SelectedIndex
		currentDirName := filepath.Base(currentPath)

		if err := LoadDirectory(state, parent); err != nil {
			return state, err
		}

		// Select the directory we just came from
		for idx, f := range state.Files {
			if f.IsDir && f.Name == currentDirName {
				state.SelectedIndex = idx
				break
			}
		}
		state.centerScrollOnSelection()
		return state, nil

	case GoToStartAction:
		return state, r.jumpTo(state, state.StartDir)

	case GoToRepoRootAction:
		if !state.InRepository() {
			state.SetErrorMessage("Not in a git repository")
			return state, nil
		}
		return state, r.jumpTo(state, state.RepoRoot)

	// ===== SCROLLING =====

	case ScrollPageUpAction:
		visibleLines := state.visibleLines()
		if len(state.Files) == 0 || visibleLines <= 0 {
			return state, nil
		}
		newIdx := state.SelectedIndex - visibleLines
		if newIdx < 0 {
			newIdx = 0
		}
		state.SelectedIndex = newIdx
		state.updateScrollVisibility()
		return state, nil

	case ScrollPageDownAction:
		visibleLines := state.visibleLines()
		if len(state.Files) == 0 || visibleLines <= 0 {
			return state, nil
		}
		newIdx := state.SelectedIndex + visibleLines
		if newIdx >= len(state.Files) {
			newIdx = len(state.Files) - 1
		}
		state.SelectedIndex = newIdx
		state.updateScrollVisibility()
		return state, nil

	case ScrollToStartAction:
		if len(state.Files) == 0 {
			return state, nil
		}
		state.SelectedIndex = 0
		state.updateScrollVisibility()
		return state, nil

	case ScrollToEndAction:
		if len(state.Files) == 0 {
			return state, nil
		}
		state.SelectedIndex = len(state.Files) - 1
		state.updateScrollVisibility()
		return state, nil

	case MouseSelectAction:
		if a.Index < 0 || a.Index >= len(state.Files) {
			return state, nil
		}
		state.SelectedIndex = a.Index
		state.updateScrollVisibility()
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.updateScrollVisibility()
		return state, nil

	case ToggleHiddenFilesAction:
		state.ShowHidden = !state.ShowHidden
		if err := state.reloadPreservingSelection(); err != nil {
			state.ShowHidden = !state.ShowHidden
			return state, err
		}
		return state, nil

	case ToggleIgnoredFilesAction:
		if !state.InRepository() {
			return state, nil
		}
		state.ShowIgnored = !state.ShowIgnored
		if err := state.reloadPreservingSelection(); err != nil {
			state.ShowIgnored = !state.ShowIgnored
			return state, err
		}
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		if state.HelpVisible {
			state.HelpVisible = false
		}
		return state, nil

	// ===== COLLECTION =====

	case CollectCurrentAction:
		r.collectCurrent(state)
		return state, nil

	case CollectAllAction:
		r.collectAll(state)
		return state, nil

	case UncollectCurrentAction:
		r.uncollectCurrent(state)
		return state, nil

	case ClearCollectionAction:
		r.clearCollection(state)
		return state, nil

	case SyncCollectionAction:
		r.syncCollection(state)
		return state, nil

	// ===== EXPORT =====

	case SaveCollectionAction:
		r.saveCollection(state, a.Name)
		return state, nil

	case SaveTreeAction:
		r.saveTree(state)
		return state, nil

	default:
		return state, fmt.Errorf("unknown action: %T", action)
	}
}

// ===== PRIVATE HELPER METHODS =====

func (r *StateReducer) jumpTo(state *AppState, path string) error {
	if path == "" || filepath.Clean(path) == filepath.Clean(state.CurrentPath) {
		return nil
	}
	r.selectionHistory[state.CurrentPath] = state.SelectedIndex
	if err := LoadDirectory(state, path); err != nil {
		return err
	}
	if savedIdx, ok := r.selectionHistory[state.CurrentPath]; ok && savedIdx < len(state.Files) {
		state.SelectedIndex = savedIdx
	}
	state.centerScrollOnSelection()
	return nil
}
