package services

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
	"github.com/custodia-labs/docwatch/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService serves documents from the store.
type DocumentService struct {
	docStore driven.DocumentStore
	config   *domain.Config
	version  string
}

// NewDocumentService creates a new document service. cfg supplies the
// site title and source link template; version is reported in SiteInfo.
func NewDocumentService(docStore driven.DocumentStore, cfg *domain.Config, version string) *DocumentService {
	if cfg == nil {
		cfg = &domain.Config{}
	}
	return &DocumentService{
		docStore: docStore,
		config:   cfg,
		version:  version,
	}
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id domain.DocumentID) (*domain.Document, error) {
	return s.docStore.Get(ctx, id)
}

// List returns every document ordered by title, then id.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.docStore.List(ctx)
	if err != nil {
		return nil, err
	}
	sortDocuments(docs)
	return docs, nil
}

// ListBySource returns the documents extracted from path.
func (s *DocumentService) ListBySource(ctx context.Context, path string) ([]domain.Document, error) {
	docs, err := s.docStore.List(ctx)
	if err != nil {
		return nil, err
	}

	path = filepath.Clean(path)
	var out []domain.Document
	for _, doc := range docs {
		if doc.FromPath(path) || filepath.Clean(doc.Source.Path) == path {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source.Line != out[j].Source.Line {
			return out[i].Source.Line < out[j].Source.Line
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetContent returns the body of a document.
func (s *DocumentService) GetContent(ctx context.Context, id domain.DocumentID) (string, error) {
	doc, err := s.docStore.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

// SourceLink renders the configured source link for a document.
func (s *DocumentService) SourceLink(ctx context.Context, id domain.DocumentID) (string, error) {
	doc, err := s.docStore.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.config.SourceLink(doc), nil
}

// SiteInfo describes the documentation site.
func (s *DocumentService) SiteInfo() domain.SiteInfo {
	return domain.SiteInfo{
		Title:       s.config.Title,
		Description: s.config.Description,
		Version:     s.version,
	}
}

func sortDocuments(docs []domain.Document) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Title != docs[j].Title {
			return docs[i].Title < docs[j].Title
		}
		return docs[i].ID < docs[j].ID
	})
}
