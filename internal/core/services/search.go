package services

import (
	"context"
	"sort"
	"strings"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
	"github.com/custodia-labs/docwatch/internal/core/ports/driving"
	"github.com/custodia-labs/docwatch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks documents by case-insensitive substring matches
// over a snapshot of the store.
type SearchService struct {
	docStore driven.DocumentStore
}

// NewSearchService creates a new search service.
func NewSearchService(docStore driven.DocumentStore) *SearchService {
	return &SearchService{docStore: docStore}
}

// Search returns documents matching query, best first. Ties are broken by
// title, then id, so results are stable between calls.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if opts.Limit < 0 {
		return nil, domain.ErrInvalidInput
	}

	docs, err := s.docStore.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var results []domain.SearchResult
	for _, doc := range docs {
		score, match, ok := scoreDocument(&doc, needle)
		if !ok {
			continue
		}
		results = append(results, domain.SearchResult{
			Document:  doc,
			Score:     score,
			MatchType: match,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Document.Title != b.Document.Title {
			return a.Document.Title < b.Document.Title
		}
		return a.Document.ID < b.Document.ID
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	logger.Debug("search %q: %d of %d documents matched", query, len(results), len(docs))
	return results, nil
}

func scoreDocument(doc *domain.Document, needle string) (int, domain.MatchType, bool) {
	inTitle := strings.Contains(strings.ToLower(doc.Title), needle)
	inContent := strings.Contains(strings.ToLower(doc.Content), needle)

	switch {
	case inTitle && inContent:
		return domain.ScoreBoth, domain.MatchBoth, true
	case inTitle:
		return domain.ScoreTitle, domain.MatchTitle, true
	case inContent:
		return domain.ScoreContent, domain.MatchContent, true
	default:
		return 0, "", false
	}
}
