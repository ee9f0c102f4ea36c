package vcs

import (
	"testing"

	fsutil "github.com/kk-code-lab/rctx/internal/fs"
)

func TestRuleSetVerdict(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
		isDir   bool
		want    fsutil.Match
	}{
		{name: "no rules", content: "", path: "main.go", want: fsutil.MatchIncluded},
		{name: "comment and blank", content: "# *.go\n\n", path: "main.go", want: fsutil.MatchIncluded},
		{name: "extension glob", content: "*.log", path: "logs/debug.log", want: fsutil.MatchIgnored},
		{name: "negation re-includes", content: "*.log\n!keep.log", path: "keep.log", want: fsutil.MatchWhitelisted},
		{name: "negation leaves others", content: "*.log\n!keep.log", path: "other.log", want: fsutil.MatchIgnored},
		{name: "last rule wins", content: "!a.txt\na.txt", path: "a.txt", want: fsutil.MatchIgnored},
		{name: "dir only skips files", content: "build/", path: "build", want: fsutil.MatchIncluded},
		{name: "dir only matches dirs", content: "build/", path: "build", isDir: true, want: fsutil.MatchIgnored},
		{name: "anchored root only", content: "/todo.txt", path: "sub/todo.txt", want: fsutil.MatchIncluded},
		{name: "anchored root", content: "/todo.txt", path: "todo.txt", want: fsutil.MatchIgnored},
		{name: "middle slash anchors", content: "doc/*.txt", path: "doc/a.txt", want: fsutil.MatchIgnored},
		{name: "middle slash not nested", content: "doc/*.txt", path: "doc/x/a.txt", want: fsutil.MatchIncluded},
		{name: "leading double star", content: "**/gen", path: "a/b/gen", isDir: true, want: fsutil.MatchIgnored},
		{name: "trailing double star", content: "vendor/**", path: "vendor/x/y.go", want: fsutil.MatchIgnored},
		{name: "trailing double star not self", content: "vendor/**", path: "vendor", isDir: true, want: fsutil.MatchIncluded},
		{name: "middle double star", content: "a/**/z", path: "a/z", want: fsutil.MatchIgnored},
		{name: "middle double star deep", content: "a/**/z", path: "a/b/c/z", want: fsutil.MatchIgnored},
		{name: "escaped hash", content: `\#notes`, path: "#notes", want: fsutil.MatchIgnored},
		{name: "escaped bang", content: `\!bang`, path: "!bang", want: fsutil.MatchIgnored},
		{name: "negated class", content: "file[!0-9].txt", path: "filea.txt", want: fsutil.MatchIgnored},
		{name: "negated class miss", content: "file[!0-9].txt", path: "file1.txt", want: fsutil.MatchIncluded},
		{name: "trailing spaces trimmed", content: "*.tmp   ", path: "x.tmp", want: fsutil.MatchIgnored},
		{name: "crlf line endings", content: "*.tmp\r\n*.bak\r\n", path: "x.tmp", want: fsutil.MatchIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &ruleSet{}
			rs.add(tt.content, ".")
			if got := rs.verdict(tt.path, tt.isDir); got != tt.want {
				t.Fatalf("verdict(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRuleSetNestedBase(t *testing.T) {
	rs := &ruleSet{}
	rs.add("*.out", "pkg")

	if got := rs.verdict("pkg/run.out", false); got != fsutil.MatchIgnored {
		t.Fatalf("nested rule should apply below its directory, got %v", got)
	}
	if got := rs.verdict("run.out", false); got != fsutil.MatchIncluded {
		t.Fatalf("nested rule should not apply above its directory, got %v", got)
	}
}

func TestTrimUnescapedSpaces(t *testing.T) {
	tests := map[string]string{
		"a  ":   "a",
		`a\ `:   `a\ `,
		`a\\ `:  `a\\`,
		"   ":   "",
		"plain": "plain",
	}
	for in, want := range tests {
		if got := trimUnescapedSpaces(in); got != want {
			t.Errorf("trimUnescapedSpaces(%q) = %q, want %q", in, got, want)
		}
	}
}
