package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// VCSDirName is never listed, whatever the visibility policy says.
const VCSDirName = ".git"

// Match is the verdict of an ignore classifier for a single path.
type Match int

const (
	MatchIncluded Match = iota
	MatchIgnored
	MatchWhitelisted
)

func (m Match) String() string {
	switch m {
	case MatchIgnored:
		return "ignored"
	case MatchWhitelisted:
		return "whitelisted"
	default:
		return "included"
	}
}

// Classifier reports how ignore rules treat a path.
type Classifier interface {
	Classify(path string, isDir bool) Match
}

// Visibility combines the hidden-file and ignore rules for a listing. A nil
// Classifier means there is no repository and nothing is ignored.
type Visibility struct {
	ShowHidden  bool
	ShowIgnored bool
	Classifier  Classifier
}

// Visible applies the policy to one entry. Whitelisted paths are shown even
// when they are hidden.
func (v Visibility) Visible(entry Entry) bool {
	match := MatchIncluded
	if v.Classifier != nil {
		match = v.Classifier.Classify(entry.FullPath, entry.IsDir)
	}
	switch {
	case match == MatchWhitelisted:
		return true
	case entry.Hidden && !v.ShowHidden:
		return false
	case match == MatchIgnored && !v.ShowIgnored:
		return false
	default:
		return true
	}
}

// List returns the visible direct children of dir, directories first and
// then by byte-wise name order. Entries that cannot be stat'ed are skipped.
func List(dir string, policy Visibility) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		rawName := e.Name()
		if rawName == VCSDirName {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}

		fullPath := filepath.Join(dir, rawName)
		if excludedFromListing(fullPath, rawName) {
			continue
		}

		isDir := e.IsDir()
		isSymlink := info.Mode()&os.ModeSymlink != 0
		if isSymlink {
			if target, err := os.Stat(fullPath); err == nil {
				isDir = target.IsDir()
			}
		}

		entry := Entry{
			Name:      norm.NFC.String(rawName),
			FullPath:  fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
			Hidden:    isHidden(fullPath, rawName),
			Size:      info.Size(),
			Modified:  info.ModTime(),
			Mode:      info.Mode(),
		}
		if !policy.Visible(entry) {
			continue
		}
		entries = append(entries, entry)
	}

	SortEntries(entries)
	return entries, nil
}

// SortEntries orders directories before files, then names byte-wise.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
}
