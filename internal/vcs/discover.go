package vcs

import (
	"os"
	"path/filepath"
	"strings"
)

// Discover walks up from start looking for a directory that holds a ".git"
// directory, or a ".git" file pointing at one (worktrees, submodules).
func Discover(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		if isRepoRoot(dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func isRepoRoot(dir string) bool {
	marker := filepath.Join(dir, ".git")
	info, err := os.Stat(marker)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return true
	}
	data, err := os.ReadFile(marker)
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(string(data)), "gitdir:")
}
