package comment

import (
	"strings"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// cLikeTokenizer is a tiny C-style lexer: // line comments, /* */ block
// comments and "double quoted" strings. Only the "go" hint is supported.
type cLikeTokenizer struct {
	calls int
}

func (t *cLikeTokenizer) Tokenize(content, language string) ([]domain.Token, error) {
	t.calls++
	if language != "go" {
		return nil, domain.ErrUnsupportedLanguage
	}

	var tokens []domain.Token
	emit := func(start, end int, scope domain.LexicalScope) {
		if end > start {
			tokens = append(tokens, domain.Token{Start: start, End: end, Scope: scope})
		}
	}

	codeStart := 0
	i := 0
	for i < len(content) {
		switch {
		case strings.HasPrefix(content[i:], "//"):
			emit(codeStart, i, domain.ScopeCode)
			end := strings.IndexByte(content[i:], '\n')
			if end < 0 {
				end = len(content)
			} else {
				end += i + 1
			}
			emit(i, end, domain.ScopeLineComment)
			i, codeStart = end, end
		case strings.HasPrefix(content[i:], "/*"):
			emit(codeStart, i, domain.ScopeCode)
			end := strings.Index(content[i+2:], "*/")
			if end < 0 {
				end = len(content)
			} else {
				end += i + 4
			}
			emit(i, end, domain.ScopeBlockComment)
			i, codeStart = end, end
		case content[i] == '"':
			emit(codeStart, i, domain.ScopeCode)
			end := strings.IndexByte(content[i+1:], '"')
			if end < 0 {
				end = len(content)
			} else {
				end += i + 2
			}
			emit(i, end, domain.ScopeString)
			i, codeStart = end, end
		default:
			i++
		}
	}
	emit(codeStart, len(content), domain.ScopeCode)
	return tokens, nil
}

// failingTokenizer always reports an unexpected error.
type failingTokenizer struct{}

func (failingTokenizer) Tokenize(string, string) ([]domain.Token, error) {
	return nil, errTokenizer
}

type tokenizerError string

func (e tokenizerError) Error() string { return string(e) }

const errTokenizer = tokenizerError("tokenizer exploded")
