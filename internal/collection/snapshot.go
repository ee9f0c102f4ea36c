// Package collection holds the in-memory set of captured files and keeps it
// in step with the filesystem.
package collection

import (
	"time"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is the captured state of one file. Content is never patched; a
// re-capture replaces the whole Snapshot.
type Snapshot struct {
	Path        string // absolute source path, unique within a Store
	Label       string
	Content     string
	Language    string
	Fingerprint uint64
	Size        int64     // bytes on disk at capture time
	ModTime     time.Time // see RefreshOne for when this moves without a re-capture
	CollectedAt time.Time
}

// Fingerprint hashes captured content for equality checks.
func Fingerprint(content string) uint64 {
	return xxhash.Sum64String(content)
}
