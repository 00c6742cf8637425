// Package glob compiles directory glob sets with doublestar.
package glob

import (
	"errors"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.PatternCompiler = Compiler{}
	_ driven.Matcher         = (*Set)(nil)
)

// Compiler builds Sets.
type Compiler struct{}

// Compile validates patterns and returns a matcher for them.
func (Compiler) Compile(patterns []string) (driven.Matcher, error) {
	set, err := Compile(patterns)
	if err != nil {
		return nil, err
	}
	return set, nil
}

var (
	errEmptySet       = errors.New("no patterns")
	errInvalidPattern = errors.New("invalid glob pattern")
)

// Set matches a path against any of its patterns. Paths are relative to
// the directory the set was configured for. A pattern without a slash
// matches the file name at any depth, so "*.md" behaves like "**/*.md".
type Set struct {
	patterns []string
}

// Compile validates every pattern.
func Compile(patterns []string) (*Set, error) {
	if len(patterns) == 0 {
		return nil, &domain.ParseError{Subject: "glob set", Err: errEmptySet}
	}
	set := &Set{patterns: make([]string, 0, len(patterns))}
	for _, p := range patterns {
		p = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(p)), "./")
		if p == "" || !doublestar.ValidatePattern(p) {
			return nil, &domain.ParseError{Subject: "glob " + strconv.Quote(p), Err: errInvalidPattern}
		}
		set.patterns = append(set.patterns, p)
	}
	return set, nil
}

// Matches reports whether rel matches any pattern.
func (s *Set) Matches(rel string) bool {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	base := path.Base(rel)
	for _, p := range s.patterns {
		name := rel
		if !strings.Contains(p, "/") {
			name = base
		}
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Patterns returns the normalised patterns.
func (s *Set) Patterns() []string {
	return append([]string(nil), s.patterns...)
}
