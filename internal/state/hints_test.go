package state

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDepth(t *testing.T) {
	start := filepath.Join(string(filepath.Separator), "work", "repo")
	tests := []struct {
		current string
		want    int
	}{
		{start, 0},
		{filepath.Join(start, "a"), 1},
		{filepath.Join(start, "a", "b", "c"), 3},
		{filepath.Dir(start), 0},
		{filepath.Join(string(filepath.Separator), "elsewhere", "x"), 0},
	}
	for _, tt := range tests {
		state := &AppState{StartDir: start, CurrentPath: tt.current}
		if got := state.Depth(); got != tt.want {
			t.Errorf("Depth(%s) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

func TestBreadcrumbs(t *testing.T) {
	start := filepath.Join(string(filepath.Separator), "work", "repo")
	state := &AppState{StartDir: start, CurrentPath: filepath.Join(start, "a", "b")}

	crumbs := state.Breadcrumbs()
	var got []string
	for _, c := range crumbs {
		got = append(got, c.Name)
	}
	if strings.Join(got, ">") != "repo>a>b" {
		t.Fatalf("unexpected crumbs %v", got)
	}
	if crumbs[0].Path != start {
		t.Fatalf("first crumb should be the start dir, got %s", crumbs[0].Path)
	}

	state.CurrentPath = start
	if crumbs := state.Breadcrumbs(); len(crumbs) != 1 || crumbs[0].Name != "repo" {
		t.Fatalf("expected single start crumb, got %+v", crumbs)
	}
}

func TestBreadcrumbsOutsideStartReachRoot(t *testing.T) {
	start := filepath.Join(string(filepath.Separator), "work", "repo")
	state := &AppState{StartDir: start, CurrentPath: filepath.Join(string(filepath.Separator), "tmp")}

	crumbs := state.Breadcrumbs()
	if len(crumbs) != 2 {
		t.Fatalf("expected root and tmp, got %+v", crumbs)
	}
	if crumbs[1].Name != "tmp" {
		t.Fatalf("expected tmp last, got %+v", crumbs)
	}
}

func TestContextualHintWithoutCollection(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "main.go"), "package main\n")
	mustMkdir(t, filepath.Join(root, "pkg"))
	state := newCollectingState(t, root)

	selectByName(t, state, "main.go")
	if got := state.ContextualHint(); got != "Press 'a' to add this file to your collection" {
		t.Fatalf("file hint: %q", got)
	}

	selectByName(t, state, "pkg")
	if got := state.ContextualHint(); got != "Press 'A' to add all files in this directory" {
		t.Fatalf("dir hint: %q", got)
	}

	state.Files = state.Files[:1]
	if got := state.ContextualHint(); got != "Navigate into directories with → to find files to collect" {
		t.Fatalf("dirs-only hint: %q", got)
	}

	state.Files = nil
	if got := state.ContextualHint(); got != "Navigate to files and press 'a' to start collecting" {
		t.Fatalf("no selection hint: %q", got)
	}

	state.HelpVisible = true
	if got := state.ContextualHint(); got != "Press '?' or ESC to close help" {
		t.Fatalf("help hint: %q", got)
	}
}

func TestContextualHintNavigationTips(t *testing.T) {
	root := t.TempDir()
	state := newCollectingState(t, root)

	state.CurrentPath = filepath.Join(root, "a", "b", "c", "d")
	if got := state.ContextualHint(); got != "Tip: Press '~' to quickly return to the start directory" {
		t.Fatalf("start tip: %q", got)
	}

	state.RepoRoot = root
	state.CurrentPath = filepath.Join(root, "a", "b", "c")
	if got := state.ContextualHint(); got != "Tip: Press 'G' to jump to the git repository root" {
		t.Fatalf("repo tip: %q", got)
	}
}

func TestContextualHintWithCollection(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.go", "b.go", "c.go", "d.go", "e.go"} {
		mustWrite(t, filepath.Join(root, name), "package x\n")
	}
	state := newCollectingState(t, root)
	reducer := NewStateReducer()

	if _, err := reducer.Reduce(state, CollectCurrentAction{}); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := state.ContextualHint(); got != "1 files collected - 'a' to add more, 'S' to save" {
		t.Fatalf("count hint: %q", got)
	}

	if _, err := reducer.Reduce(state, CollectAllAction{}); err != nil {
		t.Fatalf("collect all: %v", err)
	}
	if got := state.ContextualHint(); got != "Press 'S' to save or 'C' to copy your collection" {
		t.Fatalf("ready hint: %q", got)
	}

	later := time.Now().Add(10 * time.Minute)
	state.now = func() time.Time { return later }
	if got := state.ContextualHint(); got != "Files collected a while ago - press 'r' to refresh" {
		t.Fatalf("stale hint: %q", got)
	}
	state.now = nil

	files := state.Files
	state.Files = nil
	if got := state.ContextualHint(); got != "Empty directory - press ← to go back" {
		t.Fatalf("empty dir hint: %q", got)
	}

	state.Files = []FileEntry{{Name: "sub", IsDir: true}}
	state.SelectedIndex = 0
	if got := state.ContextualHint(); got != "Only directories here - navigate deeper or press 'S' to save your collection" {
		t.Fatalf("dirs-only hint: %q", got)
	}
	state.Files = files
}
