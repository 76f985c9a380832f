package tree

import (
	"path/filepath"

	"github.com/arthur-debert/pubtree/pkg/logging"
)

// EditorBackups are the file name globs of editor swap and backup files.
// They are never rendered.
var EditorBackups = Globs{"*~", ".*.swp", ".*.swo", ".*.swx", "#*#", ".#*", "*.bak", "*.orig"}

// Matcher decides whether an entry name is left out of a traversal.
type Matcher interface {
	Match(name string) bool
}

// Globs matches names against shell patterns as understood by
// filepath.Match. Malformed patterns never match.
type Globs []string

// Match reports whether name matches any of the patterns.
func (g Globs) Match(name string) bool {
	for _, pattern := range g {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			logger := logging.GetLogger("tree.match")
			logger.Error().
				Err(err).
				Str("pattern", pattern).
				Str("name", name).
				Msg("error matching glob pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// Names matches names exactly.
type Names []string

// Match reports whether name equals one of the names.
func (n Names) Match(name string) bool {
	for _, candidate := range n {
		if candidate == name {
			return true
		}
	}
	return false
}

// Patterns builds a matcher from a mixed list: entries holding glob
// characters are matched as globs, the rest as exact names.
func Patterns(patterns ...string) Matcher {
	var globs Globs
	var names Names
	for _, p := range patterns {
		if containsGlobChars(p) {
			globs = append(globs, p)
		} else {
			names = append(names, p)
		}
	}
	return Any(globs, names)
}

// Any matches when one of the matchers does. Nil matchers are ignored.
func Any(matchers ...Matcher) Matcher {
	return anyOf(matchers)
}

type anyOf []Matcher

func (a anyOf) Match(name string) bool {
	for _, m := range a {
		if m != nil && m.Match(name) {
			return true
		}
	}
	return false
}

func containsGlobChars(pattern string) bool {
	for _, char := range pattern {
		switch char {
		case '*', '?', '[', ']':
			return true
		}
	}
	return false
}
