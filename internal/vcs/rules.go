package vcs

import (
	"path"
	"strings"

	fsutil "github.com/kk-code-lab/rctx/internal/fs"
)

// rule is one parsed line of an ignore file.
type rule struct {
	segments []string // slash-separated glob segments
	negate   bool     // "!" prefix re-includes a path
	dirOnly  bool     // trailing "/" restricts the rule to directories
	anchored bool     // pattern contained a "/" before its last character
	base     string   // directory of the ignore file, relative to the repo root
}

// ruleSet applies rules in file order; the last matching rule wins.
type ruleSet struct {
	rules []rule
}

func (rs *ruleSet) clone() *ruleSet {
	out := &ruleSet{rules: make([]rule, len(rs.rules))}
	copy(out.rules, rs.rules)
	return out
}

// add parses the content of an ignore file located in base.
func (rs *ruleSet) add(content, base string) {
	for _, line := range strings.Split(content, "\n") {
		if r, ok := parseRule(strings.TrimSuffix(line, "\r"), base); ok {
			rs.rules = append(rs.rules, r)
		}
	}
}

func parseRule(line, base string) (rule, bool) {
	line = trimUnescapedSpaces(line)
	if line == "" || line[0] == '#' {
		return rule{}, false
	}

	r := rule{base: base}
	switch {
	case line[0] == '!':
		r.negate = true
		line = line[1:]
	case strings.HasPrefix(line, `\!`), strings.HasPrefix(line, `\#`):
		line = line[1:]
	}

	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	if strings.Contains(line, "/") {
		r.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	if line == "" {
		return rule{}, false
	}

	// path.Match spells negated classes as [^...]; gitignore also accepts [!...].
	line = strings.ReplaceAll(line, "[!", "[^")
	r.segments = strings.Split(line, "/")
	return r, true
}

// trimUnescapedSpaces drops trailing spaces that are not backslash-escaped.
func trimUnescapedSpaces(line string) string {
	end := len(line)
	for end > 0 && line[end-1] == ' ' {
		backslashes := 0
		for i := end - 2; i >= 0 && line[i] == '\\'; i-- {
			backslashes++
		}
		if backslashes%2 == 1 {
			break
		}
		end--
	}
	return line[:end]
}

// verdict evaluates rel (slash-separated, relative to the repo root) against
// every rule. Negated matches report fsutil.MatchWhitelisted.
func (rs *ruleSet) verdict(rel string, isDir bool) fsutil.Match {
	result := fsutil.MatchIncluded
	for i := range rs.rules {
		r := &rs.rules[i]
		if !r.matches(rel, isDir) {
			continue
		}
		if r.negate {
			result = fsutil.MatchWhitelisted
		} else {
			result = fsutil.MatchIgnored
		}
	}
	return result
}

func (r *rule) matches(rel string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}

	local := rel
	if r.base != "." {
		if !strings.HasPrefix(rel, r.base+"/") {
			return false
		}
		local = rel[len(r.base)+1:]
	}

	if !r.anchored {
		return globSegment(r.segments[0], path.Base(local))
	}
	return matchSegments(r.segments, strings.Split(local, "/"))
}

// matchSegments matches glob segments against path segments. A "**" segment
// spans zero or more directories; a trailing "**" needs at least one.
func matchSegments(pattern, parts []string) bool {
	if len(pattern) == 0 {
		return len(parts) == 0
	}
	if pattern[0] == "**" {
		if len(pattern) == 1 {
			return len(parts) > 0
		}
		for i := 0; i <= len(parts); i++ {
			if matchSegments(pattern[1:], parts[i:]) {
				return true
			}
		}
		return false
	}
	if len(parts) == 0 || !globSegment(pattern[0], parts[0]) {
		return false
	}
	return matchSegments(pattern[1:], parts[1:])
}

func globSegment(pattern, name string) bool {
	if pattern == "**" {
		return true
	}
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}
