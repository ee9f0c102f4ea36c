package export

import (
	"strings"

	fsutil "github.com/kk-code-lab/rctx/internal/fs"
)

const (
	treeBranch     = "├── "
	treeLastBranch = "└── "
	treePipe       = "│   "
	treeBlank      = "    "
)

// RenderTree draws the directory below root as an ASCII tree, one entry per
// line, using the same visibility rules and order as a listing. label is the
// first line. maxDepth counts levels below root: 0 draws only the label and
// a negative value means no limit. Symlinked directories are drawn but not
// expanded.
func RenderTree(root, label string, maxDepth int, policy fsutil.Visibility) (string, error) {
	entries, err := fsutil.List(root, policy)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteByte('\n')
	if maxDepth != 0 {
		writeTree(&b, entries, "", 0, maxDepth, policy)
	}
	return b.String(), nil
}

func writeTree(b *strings.Builder, entries []fsutil.Entry, prefix string, depth, maxDepth int, policy fsutil.Visibility) {
	for i, entry := range entries {
		last := i == len(entries)-1
		connector, extension := treeBranch, treePipe
		if last {
			connector, extension = treeLastBranch, treeBlank
		}

		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(entry.Name)
		if !entry.IsDir {
			b.WriteByte('\n')
			continue
		}
		b.WriteString("/\n")

		// Children of this entry sit at depth+1.
		if entry.IsSymlink || (maxDepth >= 0 && depth+1 >= maxDepth) {
			continue
		}
		children, err := fsutil.List(entry.FullPath, policy)
		if err != nil {
			continue
		}
		writeTree(b, children, prefix+extension, depth+1, maxDepth, policy)
	}
}
