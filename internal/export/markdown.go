// Package export turns a collection or a directory into text and hands that
// text to a sink.
package export

import (
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/rctx/internal/collection"
)

const (
	documentTitle = "# Code Context"
	// Four backticks leave room for ``` fences inside collected Markdown.
	fence = "````"
)

// RenderMarkdown serialises snapshots, in the given order, into one Markdown
// document. Content is copied through untouched apart from a newline added
// before a closing fence when the content lacks one.
func RenderMarkdown(snapshots []collection.Snapshot, source string) string {
	size := len(documentTitle) + len(source) + 32
	for _, snap := range snapshots {
		size += len(snap.Label) + len(snap.Language) + len(snap.Content) + 24
	}

	var b strings.Builder
	b.Grow(size)
	b.WriteString(documentTitle)
	b.WriteString("\n\n")
	b.WriteString("Generated from: ")
	b.WriteString(source)
	b.WriteString("\n\n")

	for _, snap := range snapshots {
		b.WriteString("\n## ")
		b.WriteString(snap.Label)
		b.WriteString("\n\n")
		b.WriteString(fence)
		b.WriteString(snap.Language)
		b.WriteByte('\n')
		b.WriteString(snap.Content)
		if !strings.HasSuffix(snap.Content, "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(fence)
		b.WriteByte('\n')
	}
	return b.String()
}

// SourceLabel names what a document was generated from: the repository
// directory when there is one, else the start directory.
func SourceLabel(repoRoot, startDir string) string {
	dir := startDir
	if repoRoot != "" {
		dir = repoRoot
	}
	base := filepath.Base(dir)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return dir
	}
	return base
}
