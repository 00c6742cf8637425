package comment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

func TestExtract_StringLiteralIsNotDocumentation(t *testing.T) {
	src := "package main\n\n" +
		"var s = \"📖 This is not a doc\"\n\n" +
		"// 📖 # Real Doc\n" +
		"func main() {}\n"

	comments := New(&cLikeTokenizer{}).Extract(src, "go")

	require.Len(t, comments, 1)
	assert.Equal(t, "Real Doc", comments[0].Content)
	assert.Equal(t, 5, comments[0].Line)
	assert.Equal(t, "// 📖 # Real Doc", comments[0].Raw)
}

func TestExtract_BlockCommentSpansLines(t *testing.T) {
	src := "package main\n" +
		"/* 📖 # Why use Arc?\n" +
		"Shared ownership across threads.\n" +
		"*/\n" +
		"type A struct{}\n"

	comments := New(&cLikeTokenizer{}).Extract(src, "go")

	require.Len(t, comments, 1)
	c := comments[0]
	assert.Equal(t, "Why use Arc?\nShared ownership across threads.", c.Content)
	assert.Equal(t, 2, c.Line)
	assert.True(t, strings.HasPrefix(c.Raw, "/* 📖"))
	assert.True(t, strings.HasSuffix(c.Raw, "*/"))
}

func TestExtract_ByteRangeRoundTrip(t *testing.T) {
	src := "x := 1 // 📖 Inline note  \n" +
		"/*\n  📖\n  ## Heading\n  body */\n" +
		"# not a comment in go 📖 here\n"

	comments := New(&cLikeTokenizer{}).Extract(src, "go")
	require.Len(t, comments, 3)

	for _, c := range comments {
		br := c.ByteRange()
		require.True(t, br.Valid(len(src)))
		assert.Equal(t, c.Content, src[br.Start:br.End])
	}
	assert.Equal(t, "Inline note", comments[0].Content)
	assert.Equal(t, "## Heading\n  body", comments[1].Content)
	// '#' is not a Go comment, but the line-level fallback still accepts it.
	assert.Equal(t, "here", comments[2].Content)
}

func TestExtract_SameLineStringThenComment(t *testing.T) {
	src := "s := \"📖 nope\" // 📖 yes\n"

	comments := New(&cLikeTokenizer{}).Extract(src, "go")

	require.Len(t, comments, 1)
	assert.Equal(t, "yes", comments[0].Content)
}

func TestExtract_MarkerInsideEarlierBlockIsSkipped(t *testing.T) {
	src := "/* 📖 First\n📖 still first\n*/\n// 📖 Second\n"

	comments := New(&cLikeTokenizer{}).Extract(src, "go")

	require.Len(t, comments, 2)
	assert.Equal(t, "First\n📖 still first", comments[0].Content)
	assert.Equal(t, "Second", comments[1].Content)
}

func TestExtract_MergesFollowingLineComments(t *testing.T) {
	src := "package main\n\n" +
		"// 📖 # Title\n" +
		"// Body line one.\n" +
		"//\n" +
		"//   indented stays indented\n" +
		"//\n" +
		"func main() {}\n"

	comments := New(&cLikeTokenizer{}).Extract(src, "go")

	require.Len(t, comments, 1)
	c := comments[0]
	assert.Equal(t, "Title\nBody line one.\n\n  indented stays indented", c.Content)
	assert.Equal(t, 3, c.Line)
	assert.Equal(t, "// 📖 # Title\n// Body line one.\n//\n//   indented stays indented", c.Raw)

	body := src[c.Start:c.End]
	assert.True(t, strings.HasPrefix(body, "Title\n"))
	assert.True(t, strings.HasSuffix(body, "indented stays indented"))
}

func TestExtract_LineCommentBlockBoundaries(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "code line ends the block",
			src:  "// 📖 First\nx := 1\n// not documentation\n",
			want: []string{"First"},
		},
		{
			name: "blank line ends the block",
			src:  "// 📖 First\n\n// not documentation\n",
			want: []string{"First"},
		},
		{
			name: "new marker starts a new document",
			src:  "// 📖 First\n// more first\n// 📖 Second\n// more second\n",
			want: []string{"First\nmore first", "Second\nmore second"},
		},
		{
			name: "block comment below is not merged",
			src:  "// 📖 First\n/* other */\n",
			want: []string{"First"},
		},
		{
			name: "trailing comment merges the lines below",
			src:  "x := 1 // 📖 Inline\n    // continued\n",
			want: []string{"Inline\ncontinued"},
		},
		{
			name: "string literal below ends the block",
			src:  "// 📖 First\n\"// not a comment\"\n",
			want: []string{"First"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range New(&cLikeTokenizer{}).Extract(tt.src, "go") {
				got = append(got, c.Content)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_HeuristicMergesSamePrefix(t *testing.T) {
	src := "-- 📖 SQL note\n" +
		"--   spans lines\n" +
		"# other prefix\n" +
		"(* 📖 OCaml *)\n" +
		"(* not merged *)\n"

	comments := New(nil).Extract(src, "sql")

	require.Len(t, comments, 2)
	assert.Equal(t, "SQL note\n  spans lines", comments[0].Content)
	assert.Equal(t, "OCaml", comments[1].Content)
	assert.Equal(t, len("-- 📖 SQL note\n--   spans lines"), comments[0].End)
}

func TestExtract_UnknownLanguageUsesHeuristics(t *testing.T) {
	tok := &cLikeTokenizer{}
	src := "-- 📖 SQL note\n" +
		"SELECT '📖 not a comment';\n" +
		"{- 📖 Haskell block -}\n" +
		"(* 📖 OCaml note *)\n"

	comments := New(tok).Extract(src, "sql")

	require.Len(t, comments, 3)
	assert.Equal(t, "SQL note", comments[0].Content)
	assert.Equal(t, "Haskell block", comments[1].Content)
	assert.Equal(t, "OCaml note", comments[2].Content)
	assert.Equal(t, 1, tok.calls)
}

func TestExtract_TokenizerFailureFallsBack(t *testing.T) {
	comments := New(failingTokenizer{}).Extract("# 📖 Python note\n", "py")

	require.Len(t, comments, 1)
	assert.Equal(t, "Python note", comments[0].Content)
}

func TestExtract_NilTokenizer(t *testing.T) {
	comments := New(nil).Extract("// 📖 Note\n", "go")
	require.Len(t, comments, 1)
	assert.Equal(t, "Note", comments[0].Content)
}

func TestExtract_RejectsEmptyAndUnspacedMarkers(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty after marker", "// 📖\n"},
		{"only heading delimiter", "// 📖 #\n"},
		{"only closer", "/* 📖 */\n"},
		{"no space after marker", "// 📖No space\n"},
		{"no marker", "// plain comment\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, New(&cLikeTokenizer{}).Extract(tt.src, "go"))
		})
	}
}

func TestExtract_SkipsTokenizerWhenNoMarker(t *testing.T) {
	tok := &cLikeTokenizer{}
	assert.Empty(t, New(tok).Extract("package main\n", "go"))
	assert.Equal(t, 0, tok.calls)
}

func TestExtract_CustomMarkers(t *testing.T) {
	src := "// DOC: Custom marker\nfunc f() {}\n// 📖 Default marker\n"

	comments := New(&cLikeTokenizer{}, "DOC:").Extract(src, "go")

	require.Len(t, comments, 1)
	assert.Equal(t, "Custom marker", comments[0].Content)
}

func TestTitle(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"Why use Arc?\nbecause", "Why use Arc?"},
		{"\n\n  First line  \nsecond", "First line"},
		{"## Sub heading\nbody", "Sub heading"},
		{"#tag line", "#tag line"},
		{"   \n\t", "Untitled"},
		{"", "Untitled"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Title(tt.content))
	}
}

func TestHeuristic_ExtractLine(t *testing.T) {
	h := NewHeuristic([]string{domain.DefaultMarker})

	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{"slash comment", "  // 📖 Note", "Note", true},
		{"hash comment with heading", "# 📖 # Title", "Title", true},
		{"block closer trimmed", "/* 📖 Block */", "Block", true},
		{"brace closer trimmed", "{- 📖 Hs }", "Hs", true},
		{"code line rejected", "let x = \"📖 nope\";", "", false},
		{"prefix without marker", "// nothing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := splitLines(tt.line)
			c, ok := h.ExtractLine(tt.line, lines[0])
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, c.Content)
			if ok {
				assert.Equal(t, c.Content, tt.line[c.Start:c.End])
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	lines := splitLines("a\nbc\n")
	require.Len(t, lines, 3)
	assert.Equal(t, lineSpan{number: 1, start: 0, end: 1}, lines[0])
	assert.Equal(t, lineSpan{number: 2, start: 2, end: 4}, lines[1])
	assert.Equal(t, lineSpan{number: 3, start: 5, end: 5}, lines[2])
}

func TestScopeIndex(t *testing.T) {
	idx := NewScopeIndex([]domain.Token{
		{Start: 0, End: 4, Scope: domain.ScopeCode},
		{Start: 4, End: 10, Scope: domain.ScopeBlockComment},
		{Start: 10, End: 14, Scope: domain.ScopeBlockComment},
		{Start: 14, End: 20, Scope: domain.ScopeString},
	})

	assert.Equal(t, domain.ScopeCode, idx.ScopeAt(2))
	assert.Equal(t, domain.ScopeBlockComment, idx.ScopeAt(11))
	assert.Equal(t, domain.ScopeString, idx.ScopeAt(19))
	assert.Equal(t, domain.ScopeCode, idx.ScopeAt(25))

	start, end, ok := idx.CommentRegion(5, 7)
	require.True(t, ok)
	assert.Equal(t, 4, start)
	assert.Equal(t, 14, end)

	_, _, ok = idx.CommentRegion(15, 20)
	assert.False(t, ok)
}
