// Package ignore provides gitignore-style pattern matching, with pattern
// sets scoped to the directory whose ignore file declared them.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Pattern is a single ignore pattern with its gitignore modifiers.
type Pattern struct {
	pattern  string
	negated  bool
	dirOnly  bool
	anchored bool // pattern started with /, matches from the scope root only
}

// Matcher holds the compiled patterns of one ignore file.
type Matcher struct {
	patterns []Pattern
}

// NewMatcher creates an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// AddPattern compiles one pattern line. Blank lines and comments are skipped.
func (m *Matcher) AddPattern(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	p := Pattern{}
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		p.anchored = true
		line = line[1:]
	}

	// A pattern without a slash matches its basename at any depth.
	if !p.anchored && !strings.Contains(line, "/") {
		line = "**/" + line
	}

	p.pattern = line
	m.patterns = append(m.patterns, p)
}

// AddPatterns compiles multiple pattern lines in order.
func (m *Matcher) AddPatterns(lines []string) {
	for _, line := range lines {
		m.AddPattern(line)
	}
}

// LoadFile reads patterns from a gitignore-style file. A missing file is not
// an error.
func (m *Matcher) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m.AddPattern(sc.Text())
	}
	return sc.Err()
}

// Len reports the number of compiled patterns.
func (m *Matcher) Len() int { return len(m.patterns) }

// Decide evaluates all patterns against a path relative to the matcher's
// scope, last match wins. The second result reports whether any pattern
// matched at all; when false the caller should consult an outer scope.
func (m *Matcher) Decide(path string, isDir bool) (ignored, decided bool) {
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")

	for _, p := range m.patterns {
		if p.dirOnly && !isDir {
			// A file inside a matched directory is covered too.
			if m.matchParentDir(p.pattern, path) {
				ignored = !p.negated
				decided = true
			}
			continue
		}
		if m.matchPattern(p.pattern, path) {
			ignored = !p.negated
			decided = true
		}
	}
	return ignored, decided
}

// Match reports whether a path is ignored by this matcher alone.
func (m *Matcher) Match(path string, isDir bool) bool {
	ignored, _ := m.Decide(path, isDir)
	return ignored
}

// matchParentDir checks whether any strict ancestor of path matches the
// pattern.
func (m *Matcher) matchParentDir(pattern, path string) bool {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		if m.matchPattern(pattern, strings.Join(parts[:i], "/")) {
			return true
		}
	}
	return false
}

func (m *Matcher) matchPattern(pattern, path string) bool {
	if ok, _ := doublestar.Match(pattern, path); ok {
		return true
	}
	// "node_modules" also covers "node_modules/foo/bar.js".
	if !strings.HasSuffix(pattern, "/**") {
		if ok, _ := doublestar.Match(pattern+"/**", path); ok {
			return true
		}
	}
	return false
}

// Compile builds a matcher from pattern strings.
func Compile(patterns []string) *Matcher {
	m := NewMatcher()
	m.AddPatterns(patterns)
	return m
}

// DefaultPatterns are always-on exclusions applied at the scan root, before
// any ignore file is consulted.
func DefaultPatterns() []string {
	return []string{
		".git/",
		".svn/",
		".hg/",
	}
}

type scoped struct {
	scope string // root-relative directory, "" for the scan root
	m     *Matcher
}

// Set combines matchers from ignore files found at different depths. Each
// matcher only applies to paths at or below the directory that declared it.
type Set struct {
	scopes []scoped
}

// NewSet creates an empty scope set.
func NewSet() *Set {
	return &Set{}
}

// Add registers a matcher for a scope. Callers add scopes parent-first, the
// order a tree walk discovers them in.
func (s *Set) Add(scope string, m *Matcher) {
	if m == nil || m.Len() == 0 {
		return
	}
	s.scopes = append(s.scopes, scoped{scope: filepath.ToSlash(scope), m: m})
}

// Ignored reports whether a root-relative path is ignored. Deeper scopes are
// consulted first; the first scope whose patterns match at all decides.
func (s *Set) Ignored(rel string, isDir bool) bool {
	rel = filepath.ToSlash(rel)
	for i := len(s.scopes) - 1; i >= 0; i-- {
		sub, ok := relativeTo(s.scopes[i].scope, rel)
		if !ok {
			continue
		}
		if ignored, decided := s.scopes[i].m.Decide(sub, isDir); decided {
			return ignored
		}
	}
	return false
}

// relativeTo strips scope from rel, reporting whether rel is under scope.
func relativeTo(scope, rel string) (string, bool) {
	if scope == "" {
		return rel, true
	}
	if rel == scope {
		return ".", true
	}
	if strings.HasPrefix(rel, scope+"/") {
		return rel[len(scope)+1:], true
	}
	return "", false
}
