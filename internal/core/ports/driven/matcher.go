package driven

// Matcher reports whether a root-relative, slash-separated path is selected.
type Matcher interface {
	Matches(path string) bool
}

// PatternCompiler compiles glob patterns into a Matcher.
// Invalid patterns are reported as *domain.ParseError.
type PatternCompiler interface {
	Compile(patterns []string) (Matcher, error)
}
