package comment

import (
	"sort"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// ScopeIndex answers "which lexical scope is active at this offset".
type ScopeIndex struct {
	tokens []domain.Token
}

// NewScopeIndex indexes tokens, which must be ordered and non-overlapping.
func NewScopeIndex(tokens []domain.Token) *ScopeIndex {
	return &ScopeIndex{tokens: tokens}
}

// tokenAt returns the index of the token containing offset, or -1.
func (s *ScopeIndex) tokenAt(offset int) int {
	i := sort.Search(len(s.tokens), func(i int) bool {
		return s.tokens[i].End > offset
	})
	if i < len(s.tokens) && s.tokens[i].Start <= offset {
		return i
	}
	return -1
}

// ScopeAt returns the scope active at offset. Offsets outside every
// token are reported as code.
func (s *ScopeIndex) ScopeAt(offset int) domain.LexicalScope {
	if i := s.tokenAt(offset); i >= 0 {
		return s.tokens[i].Scope
	}
	return domain.ScopeCode
}

// CommentRegion returns the bounds of the comment holding offset.
// A line comment ends at lineEnd; a block comment extends across all
// adjacent block-comment tokens. ok is false when offset is not in a comment.
func (s *ScopeIndex) CommentRegion(offset, lineEnd int) (start, end int, ok bool) {
	i := s.tokenAt(offset)
	if i < 0 || !s.tokens[i].Scope.IsComment() {
		return 0, 0, false
	}
	tok := s.tokens[i]

	if tok.Scope == domain.ScopeLineComment {
		end = tok.End
		if end > lineEnd {
			end = lineEnd
		}
		return tok.Start, end, true
	}

	first, last := i, i
	for first > 0 && s.tokens[first-1].Scope == domain.ScopeBlockComment &&
		s.tokens[first-1].End == s.tokens[first].Start {
		first--
	}
	for last+1 < len(s.tokens) && s.tokens[last+1].Scope == domain.ScopeBlockComment &&
		s.tokens[last+1].Start == s.tokens[last].End {
		last++
	}
	return s.tokens[first].Start, s.tokens[last].End, true
}

// lineComment returns a follower accepting lines whose first
// non-blank byte opens a line comment.
func (s *ScopeIndex) lineComment(src string) follower {
	return func(line lineSpan) (int, bool) {
		p := skipSpace(src, line.start, line.end)
		if p >= line.end {
			return 0, false
		}
		i := s.tokenAt(p)
		if i < 0 || s.tokens[i].Scope != domain.ScopeLineComment {
			return 0, false
		}
		return p + delimiterLen(src[p:line.end]), true
	}
}

// ScopeStage extracts documentation from markers the tokenizer places
// inside comments.
type ScopeStage struct {
	markers []string
}

// NewScopeStage creates a scope stage for markers.
func NewScopeStage(markers []string) *ScopeStage {
	return &ScopeStage{markers: markers}
}

// ExtractLine returns the documentation starting at the first marker on
// line that sits inside a comment.
func (s *ScopeStage) ExtractLine(src string, index *ScopeIndex, line lineSpan) (Comment, bool) {
	for _, pos := range markerPositions(src[line.start:line.end], s.markers) {
		markerOffset := line.start + pos.offset

		regionStart, regionEnd, ok := index.CommentRegion(markerOffset, line.end)
		if !ok {
			continue
		}
		if regionEnd > len(src) {
			regionEnd = len(src)
		}

		start, end := trimSpan(src, markerOffset+pos.size, regionEnd)
		if start >= end {
			continue
		}

		return Comment{
			Content: src[start:end],
			Line:    line.number,
			Start:   start,
			End:     end,
			Raw:     src[regionStart:regionEnd],
		}, true
	}
	return Comment{}, false
}
