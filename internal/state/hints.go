package state

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kk-code-lab/rctx/internal/collection"
)

const staleCollectionAge = 5 * time.Minute

// Crumb is one step of the path from the start directory to the current one.
type Crumb struct {
	Name string
	Path string
}

// Depth counts path components between the start and current directories.
// It is 0 when the current directory is not below the start directory.
func (s *AppState) Depth() int {
	rel, err := filepath.Rel(s.StartDir, s.CurrentPath)
	if err != nil || rel == "." {
		return 0
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

// Breadcrumbs walks from the current directory back to the start directory
// (or the filesystem root when outside it) and returns the trail in
// start-to-current order.
func (s *AppState) Breadcrumbs() []Crumb {
	var crumbs []Crumb
	current := filepath.Clean(s.CurrentPath)
	start := filepath.Clean(s.StartDir)
	for {
		name := filepath.Base(current)
		parent := filepath.Dir(current)
		if parent == current {
			name = string(filepath.Separator)
			if current == start {
				name = "~"
			}
		}
		crumbs = append(crumbs, Crumb{Name: name, Path: current})
		if current == start || parent == current {
			break
		}
		current = parent
	}

	for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
		crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
	}
	return crumbs
}

// ContextualHint returns the most relevant tip for the current state, or ""
// when there is nothing to suggest.
func (s *AppState) ContextualHint() string {
	if s.HelpVisible {
		return "Press '?' or ESC to close help"
	}

	depth := s.Depth()
	if s.CurrentPath != s.StartDir && depth > 3 {
		return "Tip: Press '~' to quickly return to the start directory"
	}
	if s.InRepository() && s.CurrentPath != s.RepoRoot && depth > 2 {
		return "Tip: Press 'G' to jump to the git repository root"
	}

	count := s.CollectionCount()
	if count == 0 {
		if file := s.getCurrentFile(); file != nil {
			switch {
			case !file.IsDir:
				return "Press 'a' to add this file to your collection"
			case s.hasRegularFiles():
				return "Press 'A' to add all files in this directory"
			default:
				return "Navigate into directories with → to find files to collect"
			}
		}
		return "Navigate to files and press 'a' to start collecting"
	}

	switch collection.SizeWarningFor(s.CollectionSize()) {
	case collection.WarningVeryLarge:
		return "Collection is very large! Consider using 'd' to remove files or 'S' to save"
	case collection.WarningLarge:
		return "Collection growing large. Ready to export with 'S' or 'C'"
	}

	if oldest, ok := s.Collection.Store().OldestCollectedAt(); ok && s.clock().Sub(oldest) > staleCollectionAge {
		return "Files collected a while ago - press 'r' to refresh"
	}

	if len(s.Files) == 0 {
		return "Empty directory - press ← to go back"
	}
	if !s.hasRegularFiles() {
		return "Only directories here - navigate deeper or press 'S' to save your collection"
	}
	if count >= 5 {
		return "Press 'S' to save or 'C' to copy your collection"
	}
	return fmt.Sprintf("%d files collected - 'a' to add more, 'S' to save", count)
}
