package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsutil "github.com/kk-code-lab/rctx/internal/fs"
)

func buildTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		if f[len(f)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
}

func TestRenderTree(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root,
		"src/main.go",
		"src/util/strings.go",
		"docs/",
		"README.md",
		".git/HEAD",
		".env",
	)

	got, err := RenderTree(root, "project", -1, fsutil.Visibility{})
	require.NoError(t, err)

	want := "project\n" +
		"├── docs/\n" +
		"├── src/\n" +
		"│   ├── util/\n" +
		"│   │   └── strings.go\n" +
		"│   └── main.go\n" +
		"└── README.md\n"
	assert.Equal(t, want, got)
}

func TestRenderTreeDepthLimit(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, "a/b/c/deep.txt", "top.txt")

	got, err := RenderTree(root, ".", 2, fsutil.Visibility{})
	require.NoError(t, err)

	want := ".\n" +
		"├── a/\n" +
		"│   └── b/\n" +
		"└── top.txt\n"
	assert.Equal(t, want, got)

	got, err = RenderTree(root, ".", 1, fsutil.Visibility{})
	require.NoError(t, err)
	assert.Equal(t, ".\n├── a/\n└── top.txt\n", got)

	got, err = RenderTree(root, ".", 0, fsutil.Visibility{})
	require.NoError(t, err)
	assert.Equal(t, ".\n", got)

	got, err = RenderTree(root, ".", -1, fsutil.Visibility{})
	require.NoError(t, err)
	assert.Contains(t, got, "deep.txt")
}

func TestRenderTreeShowsHiddenWhenAsked(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, ".env", ".git/HEAD", "main.go")

	got, err := RenderTree(root, "r", -1, fsutil.Visibility{ShowHidden: true})
	require.NoError(t, err)
	assert.Equal(t, "r\n├── .env\n└── main.go\n", got)
}

func TestRenderTreeDoesNotExpandSymlinkedDirectories(t *testing.T) {
	root := t.TempDir()
	buildTree(t, root, "real/file.txt")
	if err := os.Symlink(root, filepath.Join(root, "real", "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := RenderTree(root, "r", -1, fsutil.Visibility{})
	require.NoError(t, err)
	assert.Equal(t, "r\n└── real/\n    ├── loop/\n    └── file.txt\n", got)
}

func TestRenderTreeMissingRoot(t *testing.T) {
	_, err := RenderTree(filepath.Join(t.TempDir(), "missing"), "x", -1, fsutil.Visibility{})
	assert.Error(t, err)
}
