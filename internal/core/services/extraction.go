package services

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
	"github.com/custodia-labs/docwatch/internal/extractors/comment"
	"github.com/custodia-labs/docwatch/internal/extractors/markdown"
	"github.com/custodia-labs/docwatch/internal/logger"
)

// markdownExtensions select the markdown extractor; every other file goes
// through the comment pipeline.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// ExtractionService turns files into documents.
type ExtractionService struct {
	fs       driven.FileSystem
	comments *comment.Extractor
}

// NewExtractionService creates an extraction service. tokenizer may be
// nil, in which case comments are found by prefix heuristics only.
func NewExtractionService(fs driven.FileSystem, tokenizer driven.Tokenizer, markers []string) *ExtractionService {
	return &ExtractionService{
		fs:       fs,
		comments: comment.New(tokenizer, markers...),
	}
}

// ExtractFiles extracts every path, assigning ids against existing, which
// grows as documents are produced. A failing file is recorded and the
// batch continues.
func (s *ExtractionService) ExtractFiles(ctx context.Context, paths []string, existing domain.IDSet) domain.ExtractionResult {
	var result domain.ExtractionResult
	if existing == nil {
		existing = domain.NewIDSet()
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, domain.ExtractionError{Path: path, Err: err})
			continue
		}
		docs, err := s.ExtractFile(path, existing)
		if err != nil {
			logger.Warn("extract %s: %v", path, err)
			result.Errors = append(result.Errors, domain.ExtractionError{Path: path, Err: err})
			continue
		}
		result.Documents = append(result.Documents, docs...)
	}
	return result
}

// ExtractFile extracts the documents of a single file.
func (s *ExtractionService) ExtractFile(path string, existing domain.IDSet) ([]domain.Document, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, &domain.DecodeError{Path: path}
	}
	content := string(data)

	ext := strings.ToLower(filepath.Ext(path))
	if markdownExtensions[ext] {
		res := markdown.Extract(path, content, existing)
		if res.HeaderErr != nil {
			logger.Warn("%v", res.HeaderErr)
		}
		return []domain.Document{res.Document}, nil
	}

	return s.commentDocuments(path, content, strings.TrimPrefix(ext, "."), existing), nil
}

func (s *ExtractionService) commentDocuments(path, content, language string, existing domain.IDSet) []domain.Document {
	comments := s.comments.Extract(content, language)
	docs := make([]domain.Document, 0, len(comments))
	for _, c := range comments {
		title := comment.Title(c.Content)
		br := c.ByteRange()
		docs = append(docs, domain.Document{
			ID:      domain.AssignID(title, existing),
			Title:   title,
			Content: c.Content,
			Source: domain.Source{
				Kind:      domain.SourceCodeComment,
				Path:      path,
				Line:      c.Line,
				ByteRange: &br,
			},
		})
	}
	logger.Debug("%s: %d documented comments", path, len(docs))
	return docs
}
