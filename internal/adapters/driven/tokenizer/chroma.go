// Package tokenizer classifies source text into lexical scopes using the
// chroma lexer registry.
package tokenizer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Tokenizer = (*Chroma)(nil)

// Chroma is a Tokenizer backed by chroma's regex lexers. Language hints
// may be lexer names, aliases or file extensions ("go", "rs", "py").
type Chroma struct {
	mu    sync.Mutex
	cache map[string]chroma.Lexer
}

// New creates a chroma tokenizer.
func New() *Chroma {
	return &Chroma{cache: make(map[string]chroma.Lexer)}
}

// Tokenize returns ordered, non-overlapping scope spans covering content.
// ErrUnsupportedLanguage is returned when no lexer knows the hint.
func (c *Chroma) Tokenize(content, language string) ([]domain.Token, error) {
	lexer := c.lexer(language)
	if lexer == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, language)
	}

	it, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, content)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", language, err)
	}

	var (
		tokens  []domain.Token
		offset  int
		inBlock bool // inside a multi-token doc block comment
	)
	for t := it(); t != chroma.EOF; t = it() {
		if t.Value == "" {
			continue
		}
		end := offset + len(t.Value)
		if end > len(content) {
			// Lexers that force a trailing newline emit one byte past the input.
			if offset < len(content) && strings.HasPrefix(t.Value, content[offset:]) {
				end = len(content)
			} else if offset >= len(content) && strings.TrimSpace(t.Value) == "" {
				break
			} else {
				return nil, fmt.Errorf("tokenise %s: token stream diverged at byte %d", language, offset)
			}
		} else if content[offset:end] != t.Value {
			return nil, fmt.Errorf("tokenise %s: token stream diverged at byte %d", language, offset)
		}

		scope := classify(t)
		if t.Type == chroma.LiteralStringDoc {
			if inBlock {
				scope = domain.ScopeBlockComment
			}
			inBlock = scope == domain.ScopeBlockComment && !strings.HasSuffix(t.Value, "*/")
		} else {
			inBlock = false
		}
		if n := len(tokens); n > 0 && tokens[n-1].Scope == scope && scope != domain.ScopeLineComment {
			tokens[n-1].End = end
		} else {
			tokens = append(tokens, domain.Token{Start: offset, End: end, Scope: scope})
		}
		offset = end
	}
	return tokens, nil
}

func (c *Chroma) lexer(language string) chroma.Lexer {
	key := strings.ToLower(strings.TrimPrefix(language, "."))
	if key == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.cache[key]; ok {
		return l
	}
	l := lexers.Get(key)
	c.cache[key] = l
	return l
}

// classify maps a chroma token to the scope the comment extractor cares
// about. Preprocessor directives are code even though chroma files them
// under comments.
func classify(t chroma.Token) domain.LexicalScope {
	switch {
	case t.Type.InSubCategory(chroma.CommentPreproc):
		return domain.ScopeCode
	case t.Type == chroma.CommentMultiline:
		return domain.ScopeBlockComment
	case t.Type == chroma.CommentSingle, t.Type == chroma.CommentHashbang:
		return domain.ScopeLineComment
	case t.Type.InCategory(chroma.Comment):
		return genericComment(t.Value)
	case t.Type == chroma.LiteralStringDoc:
		return docString(t.Value)
	case t.Type.InSubCategory(chroma.LiteralString):
		return domain.ScopeString
	default:
		return domain.ScopeCode
	}
}

// docString classifies doc tokens: Rust emits "///" comments as string
// docs, Python emits triple-quoted docstrings.
func docString(value string) domain.LexicalScope {
	switch {
	case strings.HasPrefix(value, "//"):
		return domain.ScopeLineComment
	case strings.HasPrefix(value, `"`), strings.HasPrefix(value, "'"):
		return domain.ScopeString
	default:
		return domain.ScopeBlockComment
	}
}

var blockOpeners = []string{"/*", "{-", "(*", "<!--"}

func genericComment(value string) domain.LexicalScope {
	for _, p := range blockOpeners {
		if strings.HasPrefix(value, p) {
			return domain.ScopeBlockComment
		}
	}
	if strings.Contains(strings.TrimRight(value, "\r\n"), "\n") {
		return domain.ScopeBlockComment
	}
	return domain.ScopeLineComment
}
