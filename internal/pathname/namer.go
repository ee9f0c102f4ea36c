// Package pathname derives the short, human-readable labels used for
// collected files in the UI and in exported documents.
package pathname

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxFallbackLabel bounds labels synthesised for paths outside every known
// root. Only the parent portion is shortened.
const maxFallbackLabel = 60

const ellipsis = "..."

// Namer resolves labels relative to the repository root and the directory the
// program was started in. RepoRoot is empty outside a repository.
type Namer struct {
	RepoRoot string
	StartDir string
}

// Label returns the label of abs as seen from currentDir. It never fails.
func (n Namer) Label(abs, currentDir string) string {
	if n.RepoRoot != "" {
		if rel, ok := Within(n.RepoRoot, abs); ok {
			return rel
		}
	}
	if n.StartDir != "" {
		if rel, ok := Within(n.StartDir, abs); ok {
			return rel
		}
	}
	if currentDir != "" {
		if rel, ok := Within(currentDir, abs); ok {
			dirName := filepath.Base(currentDir)
			if dirName == "" || dirName == "." || dirName == string(filepath.Separator) {
				dirName = "current"
			}
			return dirName + "/" + rel
		}
	}
	return fallbackLabel(abs)
}

// DisplayPath is the variant used in status messages: bare names for files in
// currentDir, "./sub/x" below it, and Label for everything else.
func (n Namer) DisplayPath(abs, currentDir string) string {
	rel, ok := Within(currentDir, abs)
	if !ok {
		return n.Label(abs, currentDir)
	}
	switch {
	case rel == ".":
		return "."
	case !strings.Contains(rel, "/"):
		return rel
	default:
		return "./" + rel
	}
}

// Within reports abs relative to root with forward slashes, and whether abs
// lies inside root at all. root itself yields ".".
func Within(root, abs string) (string, bool) {
	if root == "" || abs == "" {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") || filepath.IsAbs(rel) {
		return "", false
	}
	return rel, true
}

func fallbackLabel(abs string) string {
	clean := filepath.Clean(abs)
	fileName := filepath.Base(clean)
	if fileName == "" || fileName == string(filepath.Separator) || fileName == "." {
		fileName = "unknown"
	}

	parent := parentContext(filepath.Dir(clean))
	label := parent + "/" + fileName
	if len(label) <= maxFallbackLabel {
		return label
	}

	keep := maxFallbackLabel - (len(fileName) + len(ellipsis) + 1)
	if len(parent) <= keep || keep <= len(ellipsis) {
		return label
	}
	tail := parent[len(parent)-keep+len(ellipsis):]
	for len(tail) > 0 && !utf8.RuneStart(tail[0]) {
		tail = tail[1:]
	}
	return ellipsis + tail + "/" + fileName
}

// parentContext names the directory holding a file: its base name, else the
// last two components of its path, else "root".
func parentContext(dir string) string {
	base := filepath.Base(dir)
	if base != "" && base != "." && base != string(filepath.Separator) && base != filepath.VolumeName(dir) {
		return base
	}

	parts := strings.FieldsFunc(filepath.ToSlash(dir), func(r rune) bool { return r == '/' })
	switch {
	case len(parts) == 0:
		return "root"
	case len(parts) == 1:
		return parts[0]
	default:
		return strings.Join(parts[len(parts)-2:], "/")
	}
}
