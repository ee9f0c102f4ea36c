package state

import (
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kk-code-lab/rctx/internal/collection"
	fsutil "github.com/kk-code-lab/rctx/internal/fs"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	// Navigation & filesystem
	CurrentPath string
	StartDir    string // where the session began; '~' returns here
	RepoRoot    string // empty outside a repository
	Files       []FileEntry

	// Selection & viewport
	SelectedIndex int
	ScrollOffset  int

	// Visibility policy
	ShowHidden  bool
	ShowIgnored bool
	Classifier  fsutil.Classifier // nil outside a repository

	// Collection
	Collection *collection.Collector

	// Transient feedback
	Message        *Message
	MessageTimeout time.Duration

	HelpVisible bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	ClipboardAvailable bool

	// TreeDepth bounds tree exports from the browser (0 = root only,
	// negative = unlimited).
	TreeDepth int

	Logger *zap.Logger

	now func() time.Time
}

// ===== HELPER METHODS =====

func (s *AppState) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *AppState) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Visibility is the listing policy derived from the current toggles.
func (s *AppState) Visibility() fsutil.Visibility {
	return fsutil.Visibility{
		ShowHidden:  s.ShowHidden,
		ShowIgnored: s.ShowIgnored,
		Classifier:  s.Classifier,
	}
}

// InRepository reports whether the session started inside a repository.
func (s *AppState) InRepository() bool {
	return s.RepoRoot != ""
}

func (s *AppState) getCurrentFile() *FileEntry {
	if s.SelectedIndex >= 0 && s.SelectedIndex < len(s.Files) {
		return &s.Files[s.SelectedIndex]
	}
	return nil
}

// CurrentFile returns the selected entry, or nil for an empty listing.
func (s *AppState) CurrentFile() *FileEntry {
	return s.getCurrentFile()
}

// CurrentFilePath is the selected entry's path, or the directory itself.
func (s *AppState) CurrentFilePath() string {
	if file := s.getCurrentFile(); file != nil {
		return file.FullPath
	}
	return filepath.Clean(s.CurrentPath)
}

// IsCollected reports whether entry's path is in the collection.
func (s *AppState) IsCollected(entry FileEntry) bool {
	if s.Collection == nil || entry.IsDir {
		return false
	}
	return s.Collection.Store().Contains(entry.FullPath)
}

// CollectionCount is the number of collected files.
func (s *AppState) CollectionCount() int {
	if s.Collection == nil {
		return 0
	}
	return s.Collection.Store().Len()
}

// CollectionSize is the total captured content size in bytes.
func (s *AppState) CollectionSize() int64 {
	if s.Collection == nil {
		return 0
	}
	return s.Collection.Store().TotalSize()
}

func (s *AppState) hasRegularFiles() bool {
	for _, f := range s.Files {
		if !f.IsDir {
			return true
		}
	}
	return false
}
