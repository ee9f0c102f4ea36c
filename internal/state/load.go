package state

import (
	"path/filepath"

	fsutil "github.com/kk-code-lab/rctx/internal/fs"
)

// LoadDirectory loads files from a directory into the provided AppState.
// The selection resets to the first entry.
func LoadDirectory(state *AppState, path ...string) error {
	var dirPath string
	if len(path) > 0 {
		dirPath = path[0]
	} else {
		dirPath = state.CurrentPath
	}
	dirPath = filepath.Clean(dirPath)

	entries, err := fsutil.List(dirPath, state.Visibility())
	if err != nil {
		return err
	}

	state.CurrentPath = dirPath
	state.Files = entries
	state.resetViewport()
	return nil
}

// reloadPreservingSelection re-lists the current directory and keeps the
// cursor on the same name when it is still listed.
func (s *AppState) reloadPreservingSelection() error {
	prevName := ""
	if file := s.getCurrentFile(); file != nil {
		prevName = file.Name
	}
	prevIndex := s.SelectedIndex
	prevScroll := s.ScrollOffset

	if err := LoadDirectory(s); err != nil {
		return err
	}

	restored := false
	if prevName != "" {
		if idx := findFileIndexByName(s.Files, prevName); idx >= 0 {
			s.SelectedIndex = idx
			restored = true
		}
	}
	if !restored && prevIndex >= 0 {
		switch {
		case prevIndex < len(s.Files):
			s.SelectedIndex = prevIndex
		case len(s.Files) > 0:
			s.SelectedIndex = len(s.Files) - 1
		}
	}

	s.ScrollOffset = prevScroll
	s.updateScrollVisibility()
	return nil
}

func (s *AppState) resetViewport() {
	s.SelectedIndex = 0
	s.ScrollOffset = 0
}

func findFileIndexByName(files []FileEntry, name string) int {
	for idx, file := range files {
		if file.Name == name {
			return idx
		}
	}
	return -1
}
