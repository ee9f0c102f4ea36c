package vcs

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"

	fsutil "github.com/kk-code-lab/rctx/internal/fs"
)

// ignoreFiles are read in every directory, lowest priority first.
var ignoreFiles = []string{".gitignore", ".ignore"}

// Classifier answers ignore queries for paths inside one repository. Rules
// for each directory are loaded lazily and cached. It is not safe for
// concurrent use.
type Classifier struct {
	root     string
	dirRules map[string]*ruleSet // keyed by slash-separated dir relative to root
	dirMatch map[string]fsutil.Match
}

// NewClassifier loads global excludes, .git/info/exclude and the root ignore
// files of the repository at root.
func NewClassifier(root string) *Classifier {
	c := &Classifier{
		root:     root,
		dirRules: make(map[string]*ruleSet),
		dirMatch: make(map[string]fsutil.Match),
	}

	base := &ruleSet{}
	c.addGlobalExcludes(base)
	addRuleFile(base, filepath.Join(root, ".git", "info", "exclude"), ".")
	c.addDirectoryFiles(base, ".")
	c.dirRules["."] = base
	return c
}

// Classify reports whether path is ignored, explicitly re-included, or
// neither. Paths inside an ignored directory are ignored. Paths outside the
// repository are always included.
func (c *Classifier) Classify(p string, isDir bool) fsutil.Match {
	rel, ok := c.relative(p)
	if !ok || rel == "." {
		return fsutil.MatchIncluded
	}

	parent := path.Dir(rel)
	if parent != "." && c.dirVerdict(parent) == fsutil.MatchIgnored {
		return fsutil.MatchIgnored
	}
	return c.rulesFor(parent).verdict(rel, isDir)
}

// dirVerdict resolves a directory, inheriting an ignored ancestor.
func (c *Classifier) dirVerdict(rel string) fsutil.Match {
	if m, ok := c.dirMatch[rel]; ok {
		return m
	}
	parent := path.Dir(rel)
	var m fsutil.Match
	if parent != "." && c.dirVerdict(parent) == fsutil.MatchIgnored {
		m = fsutil.MatchIgnored
	} else {
		m = c.rulesFor(parent).verdict(rel, true)
	}
	c.dirMatch[rel] = m
	return m
}

// rulesFor returns the rules in force for entries of dir: the parent's
// rules followed by the ignore files found in dir itself.
func (c *Classifier) rulesFor(dir string) *ruleSet {
	if rs, ok := c.dirRules[dir]; ok {
		return rs
	}
	rs := c.rulesFor(path.Dir(dir)).clone()
	c.addDirectoryFiles(rs, dir)
	c.dirRules[dir] = rs
	return rs
}

func (c *Classifier) relative(p string) (string, bool) {
	rel, err := filepath.Rel(c.root, p)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

func (c *Classifier) addDirectoryFiles(rs *ruleSet, dir string) {
	full := filepath.Join(c.root, filepath.FromSlash(dir))
	for _, name := range ignoreFiles {
		addRuleFile(rs, filepath.Join(full, name), dir)
	}
}

func (c *Classifier) addGlobalExcludes(rs *ruleSet) {
	seen := make(map[string]struct{})
	add := func(candidate string) {
		if candidate == "" {
			return
		}
		if _, dup := seen[candidate]; dup {
			return
		}
		seen[candidate] = struct{}{}
		addRuleFile(rs, candidate, ".")
	}

	add(c.coreExcludesFile())
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		add(filepath.Join(home, ".config", "git", "ignore"))
	}
}

func addRuleFile(rs *ruleSet, file, base string) bool {
	data, err := os.ReadFile(file)
	if err != nil || len(data) == 0 {
		return false
	}
	rs.add(string(data), base)
	return true
}

// coreExcludesFile reads core.excludesFile from the repository config.
func (c *Classifier) coreExcludesFile() string {
	f, err := os.Open(filepath.Join(c.root, ".git", "config"))
	if err != nil {
		return ""
	}
	defer func() {
		_ = f.Close()
	}()

	inCore := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inCore = strings.HasPrefix(strings.ToLower(line), "[core")
			continue
		}
		if !inCore {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "excludesfile") {
			continue
		}
		value = expandHome(strings.Trim(strings.TrimSpace(value), `"`))
		if value == "" {
			continue
		}
		if !filepath.IsAbs(value) {
			value = filepath.Join(c.root, value)
		}
		return value
	}
	return ""
}

func expandHome(value string) string {
	if value != "~" && !strings.HasPrefix(value, "~/") {
		return value
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return value
	}
	return filepath.Join(home, strings.TrimPrefix(value[1:], "/"))
}
