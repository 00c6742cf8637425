// Package comment finds marked documentation inside source code comments.
//
// Extraction is a two-stage pipeline. The scope stage asks the lexical
// tokenizer which scope is active at each marker and only accepts markers
// inside comments, so markers in string literals or identifiers are never
// harvested. When the language has no grammar, or the scope stage finds no
// comment for a marker-bearing line, the heuristic stage inspects that line
// alone for a known comment prefix.
package comment

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// DefaultMarker flags a comment as documentation.
const DefaultMarker = domain.DefaultMarker

// Comment is a documentation span found in source text.
type Comment struct {
	// Content is the documentation text with marker, heading delimiter
	// and comment closer removed. For a single line or a block comment
	// Content == file[Start:End]; merged line comments also lose their
	// delimiters.
	Content string

	// Line is the 1-based line holding the marker.
	Line int

	// Start and End are byte offsets of the documentation within the
	// file: Start is the first content byte, End follows the last.
	Start int
	End   int

	// Raw is the full comment text the marker was found in.
	Raw string
}

// ByteRange returns the location of Content within the file.
func (c Comment) ByteRange() domain.ByteRange {
	return domain.ByteRange{Start: c.Start, End: c.End}
}

// blockClosers are trimmed from the end of documentation text.
var blockClosers = []string{"*/", "-->", "-}", "*)", "}"}

// lineOpeners are line comment delimiters, longest first.
var lineOpeners = []string{"///", "//!", "//", "#", "--", ";", "%"}

// delimiterLen returns the length of the line comment delimiter text
// opens with, or 0 when it has none.
func delimiterLen(text string) int {
	for _, o := range lineOpeners {
		if strings.HasPrefix(text, o) {
			return len(o)
		}
	}
	return 0
}

// markerPositions returns the offsets, in ascending order, of every marker
// in line that is followed by whitespace or the end of the line.
func markerPositions(line string, markers []string) []markerPos {
	var out []markerPos
	for _, m := range markers {
		from := 0
		for {
			i := strings.Index(line[from:], m)
			if i < 0 {
				break
			}
			i += from
			if followedBySpace(line, i+len(m)) {
				out = append(out, markerPos{offset: i, size: len(m)})
			}
			from = i + len(m)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].offset < out[b].offset })
	return out
}

// markerPos is a marker occurrence within a line.
type markerPos struct {
	offset int
	size   int
}

// markerAt returns the offset and length of the earliest marker in line,
// or -1 when there is none.
func markerAt(line string, markers []string) (idx, size int) {
	pos := markerPositions(line, markers)
	if len(pos) == 0 {
		return -1, 0
	}
	return pos[0].offset, pos[0].size
}

func followedBySpace(s string, pos int) bool {
	if pos >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return unicode.IsSpace(r)
}

// trimSpan narrows [start, end) of src to the documentation payload:
// leading whitespace and a single heading delimiter are skipped, trailing
// whitespace and block closers are dropped.
func trimSpan(src string, start, end int) (int, int) {
	start = skipSpace(src, start, end)
	if start < end && src[start] == '#' {
		after := start + 1
		if after == end || isSpaceByte(src[after]) {
			start = skipSpace(src, after, end)
		}
	}

	end = trimSpaceRight(src, start, end)
	for _, closer := range blockClosers {
		if strings.HasSuffix(src[start:end], closer) {
			end = trimSpaceRight(src, start, end-len(closer))
			break
		}
	}
	return start, end
}

func skipSpace(src string, i, end int) int {
	for i < end {
		r, size := utf8.DecodeRuneInString(src[i:end])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func trimSpaceRight(src string, start, end int) int {
	for end > start {
		r, size := utf8.DecodeLastRuneInString(src[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	return end
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// lineSpan describes one line of the file.
type lineSpan struct {
	number int // 1-based
	start  int // offset of the first byte
	end    int // offset just past the last byte, excluding the newline
}

// splitLines returns the line layout of content.
func splitLines(content string) []lineSpan {
	lines := make([]lineSpan, 0, strings.Count(content, "\n")+1)
	start := 0
	for n := 1; start <= len(content); n++ {
		i := strings.IndexByte(content[start:], '\n')
		if i < 0 {
			lines = append(lines, lineSpan{number: n, start: start, end: len(content)})
			break
		}
		lines = append(lines, lineSpan{number: n, start: start, end: start + i})
		start += i + 1
	}
	return lines
}
