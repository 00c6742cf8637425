package domain

// LexicalScope classifies a span of tokenized source text.
type LexicalScope int

const (
	// ScopeCode is anything that is neither comment nor string.
	ScopeCode LexicalScope = iota

	// ScopeString is a string or character literal.
	ScopeString

	// ScopeLineComment is a comment that ends at the end of its line.
	ScopeLineComment

	// ScopeBlockComment is a delimited comment that may span lines.
	ScopeBlockComment
)

// IsComment reports whether the scope is any kind of comment.
func (s LexicalScope) IsComment() bool {
	return s == ScopeLineComment || s == ScopeBlockComment
}

// String returns a readable scope name.
func (s LexicalScope) String() string {
	switch s {
	case ScopeString:
		return "string"
	case ScopeLineComment:
		return "line-comment"
	case ScopeBlockComment:
		return "block-comment"
	default:
		return "code"
	}
}

// Token is a classified span [Start, End) of file content.
type Token struct {
	Start int
	End   int
	Scope LexicalScope
}
