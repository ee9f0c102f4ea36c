package fs

import (
	"os"
	"time"
)

// Entry is one child of a listed directory. Entries are rebuilt on every
// listing and never mutated afterwards.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Hidden    bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// IsRegular reports whether the entry can be offered to the admission filter.
// Symlinks count; Admit resolves them.
func (e Entry) IsRegular() bool {
	return !e.IsDir && (e.Mode.IsRegular() || e.IsSymlink)
}
