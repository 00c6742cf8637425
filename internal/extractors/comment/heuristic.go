package comment

import "strings"

// commentPrefixes are the line and block comment openers the heuristic
// stage recognises.
var commentPrefixes = []string{"//", "#", "--", "/*", "{-", "(*"}

// Heuristic extracts documentation from a single line without any grammar.
// The trimmed line must open with a known comment prefix and the rest of
// the line must hold a marker. lineStart is the line's offset in the file
// so the returned span is file-relative.
type Heuristic struct {
	markers []string
}

// NewHeuristic creates a heuristic stage for markers.
func NewHeuristic(markers []string) *Heuristic {
	return &Heuristic{markers: markers}
}

// ExtractLine inspects one line and reports the documentation it holds.
func (h *Heuristic) ExtractLine(src string, line lineSpan) (Comment, bool) {
	text := src[line.start:line.end]
	indent := len(text) - len(strings.TrimLeft(text, " \t"))
	body := text[indent:]

	prefix := commentPrefix(body)
	if prefix == "" {
		return Comment{}, false
	}

	rest := body[len(prefix):]
	idx, size := markerAt(rest, h.markers)
	if idx < 0 {
		return Comment{}, false
	}

	restStart := line.start + indent + len(prefix)
	start, end := trimSpan(src, restStart+idx+size, line.end)
	if start >= end {
		return Comment{}, false
	}

	return Comment{
		Content: src[start:end],
		Line:    line.number,
		Start:   start,
		End:     end,
		Raw:     strings.TrimRight(body, "\r"),
	}, true
}

// continuation returns a follower accepting lines that open with the same
// line comment prefix as line. Block comment lines have none.
func (h *Heuristic) continuation(src string, line lineSpan) follower {
	text := src[line.start:line.end]
	prefix := commentPrefix(strings.TrimLeft(text, " \t"))
	if !isLinePrefix(prefix) {
		return nil
	}
	return func(next lineSpan) (int, bool) {
		p := skipSpace(src, next.start, next.end)
		if !strings.HasPrefix(src[p:next.end], prefix) {
			return 0, false
		}
		return p + delimiterLen(src[p:next.end]), true
	}
}

func commentPrefix(body string) string {
	for _, p := range commentPrefixes {
		if strings.HasPrefix(body, p) {
			return p
		}
	}
	return ""
}

func isLinePrefix(prefix string) bool {
	return prefix == "//" || prefix == "#" || prefix == "--"
}
