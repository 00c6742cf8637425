package driven

import "github.com/custodia-labs/docwatch/internal/core/domain"

// Tokenizer is the lexical tokenizer service.
// Given file content and a language hint (usually the file extension),
// it returns contiguous classified spans covering the content in order.
// It returns domain.ErrUnsupportedLanguage when no grammar matches the hint.
type Tokenizer interface {
	Tokenize(content, language string) ([]domain.Token, error)
}
