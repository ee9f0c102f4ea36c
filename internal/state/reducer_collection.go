package state

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kk-code-lab/rctx/internal/collection"
	"github.com/kk-code-lab/rctx/internal/export"
)

func (r *StateReducer) collectCurrent(state *AppState) {
	file := state.getCurrentFile()
	if file == nil {
		state.SetErrorMessage("No file selected")
		return
	}
	if file.IsDir {
		state.SetErrorMessage("Cannot collect directories")
		return
	}

	result, err := state.Collection.AddOrUpdate(*file, state.CurrentPath)
	if err != nil {
		state.SetErrorMessage(collection.Describe(err))
		return
	}
	state.SetSuccessMessage(collection.AddMessage(file.Name, result))
}

func (r *StateReducer) collectAll(state *AppState) {
	summary := state.Collection.AddAll(state.Files, state.CurrentPath)
	state.SetSuccessMessage(collection.AddAllMessage(summary, state.CollectionCount()))
}

func (r *StateReducer) uncollectCurrent(state *AppState) {
	file := state.getCurrentFile()
	if file == nil {
		state.SetErrorMessage("No file selected")
		return
	}
	if file.IsDir {
		state.SetErrorMessage("Cannot remove directories from collection")
		return
	}

	snap, ok := state.Collection.Remove(file.FullPath)
	if !ok {
		state.SetErrorMessage(fmt.Sprintf("%s is not in the collection", file.Name))
		return
	}
	state.SetSuccessMessage(collection.RemoveMessage(file.Name, snap, state.CollectionCount()))
}

func (r *StateReducer) clearCollection(state *AppState) {
	n := state.Collection.Clear()
	if n == 0 {
		state.SetErrorMessage("Collection is already empty")
		return
	}
	state.SetSuccessMessage(fmt.Sprintf("Cleared %d files from collection", n))
}

func (r *StateReducer) syncCollection(state *AppState) {
	before := state.CollectionCount()
	if before == 0 {
		state.SetErrorMessage("No files in collection to refresh")
		return
	}

	summary := state.Collection.RefreshAll()
	text, ok := collection.RefreshMessage(summary, before, state.CollectionCount())
	if ok {
		state.SetSuccessMessage(text)
	} else {
		state.SetErrorMessage(text)
	}
}

func (r *StateReducer) saveCollection(state *AppState, name string) {
	markdown, ok := state.CollectionMarkdown()
	if !ok {
		state.SetErrorMessage("Collection is empty")
		return
	}

	path, err := export.WriteFile(state.CurrentPath, name, markdown, state.clock())
	if err != nil {
		state.logger().Warn("save collection failed", zap.String("dir", state.CurrentPath), zap.Error(err))
		state.SetErrorMessage(fmt.Sprintf("Failed to save file: %v", err))
		return
	}
	state.logger().Info("saved collection",
		zap.String("path", path),
		zap.Int("files", state.CollectionCount()),
		zap.Int("bytes", len(markdown)),
	)

	display := state.Collection.Namer().DisplayPath(path, state.CurrentPath)
	state.SetSuccessMessage(fmt.Sprintf("Saved %d files (%s) to %s",
		state.CollectionCount(), collection.FormatSize(state.CollectionSize()), display))
	r.refreshListing(state)
}

func (r *StateReducer) saveTree(state *AppState) {
	tree, err := state.TreeText()
	if err != nil {
		state.SetErrorMessage(fmt.Sprintf("Failed to generate tree: %v", err))
		return
	}

	path, err := export.WriteFile(state.CurrentPath, export.TreeFileName, tree, state.clock())
	if err != nil {
		state.logger().Warn("save tree failed", zap.String("dir", state.CurrentPath), zap.Error(err))
		state.SetErrorMessage(fmt.Sprintf("Failed to save file: %v", err))
		return
	}
	state.logger().Info("saved tree", zap.String("path", path), zap.Int("bytes", len(tree)))

	state.SetSuccessMessage(fmt.Sprintf("Tree saved to %s", path))
	r.refreshListing(state)
}

// refreshListing picks up files an export just wrote. A failure leaves the
// old listing in place; the export itself already succeeded.
func (r *StateReducer) refreshListing(state *AppState) {
	if err := state.reloadPreservingSelection(); err != nil {
		state.logger().Debug("listing refresh failed", zap.String("dir", state.CurrentPath), zap.Error(err))
	}
}

// CollectionMarkdown renders the collection; ok is false when it is empty.
func (s *AppState) CollectionMarkdown() (string, bool) {
	if s.CollectionCount() == 0 {
		return "", false
	}
	source := export.SourceLabel(s.RepoRoot, s.StartDir)
	return export.RenderMarkdown(s.Collection.Store().Snapshots(), source), true
}

// TreeText renders the current directory with the active visibility policy.
func (s *AppState) TreeText() (string, error) {
	label := "."
	if s.Collection != nil {
		label = s.Collection.Namer().DisplayPath(s.CurrentPath, s.CurrentPath)
	}
	return export.RenderTree(s.CurrentPath, label, s.TreeDepth, s.Visibility())
}

// ClipboardErrorMessage phrases a failed clipboard write for the user.
func ClipboardErrorMessage(err error) string {
	if errors.Is(err, export.ErrClipboardUnavailable) {
		return "Clipboard is not available on this system"
	}
	return fmt.Sprintf("Clipboard error: %v", err)
}
