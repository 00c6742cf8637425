package comment

import (
	"errors"
	"strings"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
	"github.com/custodia-labs/docwatch/internal/logger"
)

// untitled is the title of a comment with no usable first line.
const untitled = "Untitled"

// Extractor runs the scope stage and falls back to the heuristic stage
// line by line.
type Extractor struct {
	tokenizer driven.Tokenizer
	markers   []string
	scope     *ScopeStage
	heuristic *Heuristic
}

// New creates an extractor. A nil tokenizer disables the scope stage.
// With no markers the default marker is used.
func New(tokenizer driven.Tokenizer, markers ...string) *Extractor {
	if len(markers) == 0 {
		markers = []string{DefaultMarker}
	}
	return &Extractor{
		tokenizer: tokenizer,
		markers:   markers,
		scope:     NewScopeStage(markers),
		heuristic: NewHeuristic(markers),
	}
}

// Extract returns the documentation comments in content in file order.
// An unknown language is not an error: only the heuristic stage runs.
func (e *Extractor) Extract(content, language string) []Comment {
	if !e.mentionsMarker(content) {
		return nil
	}

	index := e.index(content, language)

	lines := splitLines(content)

	var (
		comments []Comment
		covered  int
	)
	for i, line := range lines {
		if line.end <= covered || !e.mentionsMarker(content[line.start:line.end]) {
			continue
		}

		var (
			c      Comment
			ok     bool
			follow follower
		)
		if index != nil {
			if c, ok = e.scope.ExtractLine(content, index, line); ok && c.Start >= covered {
				if index.ScopeAt(c.Start) == domain.ScopeLineComment {
					follow = index.lineComment(content)
				}
			} else {
				ok = false
			}
		}
		if !ok {
			if c, ok = e.heuristic.ExtractLine(content, line); !ok || c.Start < covered {
				continue
			}
			follow = e.heuristic.continuation(content, line)
		}

		if follow != nil {
			c = e.extend(c, content, lines[i+1:], follow)
		}
		comments = append(comments, c)
		covered = c.End
	}
	return comments
}

// follower reports whether line continues a line-comment block and, if
// so, the offset just past its comment delimiter.
type follower func(line lineSpan) (int, bool)

// extend merges the line comments directly below c into it. A blank line,
// a line that is not a comment or a line carrying its own marker ends the
// block. Each continuation loses its delimiter and one leading space, so
// Content no longer equals file[Start:End] once lines are merged.
func (e *Extractor) extend(c Comment, src string, rest []lineSpan, follow follower) Comment {
	var (
		content = []string{c.Content}
		raw     = []string{c.Raw}
		pending []string
		rawPend []string
	)
	for _, line := range rest {
		text := src[line.start:line.end]
		if strings.TrimSpace(text) == "" || len(markerPositions(text, e.markers)) > 0 {
			break
		}
		from, ok := follow(line)
		if !ok {
			break
		}

		end := trimSpaceRight(src, from, line.end)
		if from < end && src[from] == ' ' {
			from++
		}
		pending = append(pending, src[from:end])
		rawPend = append(rawPend, strings.TrimRight(text, "\r"))
		if from < end {
			content = append(content, pending...)
			raw = append(raw, rawPend...)
			pending, rawPend = nil, nil
			c.End = end
		}
	}

	c.Content = strings.Join(content, "\n")
	c.Raw = strings.Join(raw, "\n")
	return c
}

// index tokenizes content, returning nil when no grammar is available.
func (e *Extractor) index(content, language string) *ScopeIndex {
	if e.tokenizer == nil {
		return nil
	}
	tokens, err := e.tokenizer.Tokenize(content, language)
	if err != nil {
		if !errors.Is(err, domain.ErrUnsupportedLanguage) {
			logger.Debug("tokenizer failed for %q, using heuristics: %v", language, err)
		}
		return nil
	}
	return NewScopeIndex(tokens)
}

func (e *Extractor) mentionsMarker(s string) bool {
	for _, m := range e.markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Title derives a document title from comment content: the first
// non-blank line with any heading delimiter removed, else "Untitled".
func Title(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest := strings.TrimLeft(trimmed, "#"); rest != trimmed && strings.HasPrefix(rest, " ") {
			trimmed = strings.TrimSpace(rest)
		}
		if trimmed != "" {
			return trimmed
		}
	}
	return untitled
}
