package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type EnterDirectoryAction struct{}
type GoUpAction struct{}
type GoToStartAction struct{}    // ~
type GoToRepoRootAction struct{} // G

// ===== SCROLL ACTIONS =====

type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollToStartAction struct{}
type ScrollToEndAction struct{}

type MouseSelectAction struct {
	Index int
}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type ToggleHiddenFilesAction struct{}
type ToggleIgnoredFilesAction struct{}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== COLLECTION ACTIONS =====

type CollectCurrentAction struct{}   // a
type CollectAllAction struct{}       // A
type UncollectCurrentAction struct{} // d
type ClearCollectionAction struct{}  // D
type SyncCollectionAction struct{}   // r

// ===== EXPORT ACTIONS =====

type SaveCollectionAction struct {
	Name string // empty picks a timestamped name
}
type SaveTreeAction struct{}

// Clipboard exports are carried out by the application, which owns the
// clipboard.
type CopyCollectionAction struct{}
type CopyTreeAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
