package mcp

import (
	"context"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.SearchResult
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService
// over a fixed document slice.
type mockDocumentService struct {
	documents []domain.Document
	link      string
	site      domain.SiteInfo
	err       error
	lastPath  string
}

func (m *mockDocumentService) find(id domain.DocumentID) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.documents {
		if m.documents[i].ID == id {
			doc := m.documents[i]
			return &doc, nil
		}
	}
	return nil, domain.DocumentNotFound(id)
}

func (m *mockDocumentService) Get(_ context.Context, id domain.DocumentID) (*domain.Document, error) {
	return m.find(id)
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) ListBySource(_ context.Context, path string) ([]domain.Document, error) {
	m.lastPath = path
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Document
	for _, d := range m.documents {
		if d.Source.Path == path {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDocumentService) GetContent(_ context.Context, id domain.DocumentID) (string, error) {
	doc, err := m.find(id)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

func (m *mockDocumentService) SourceLink(_ context.Context, id domain.DocumentID) (string, error) {
	if _, err := m.find(id); err != nil {
		return "", err
	}
	return m.link, nil
}

func (m *mockDocumentService) SiteInfo() domain.SiteInfo {
	return m.site
}

func sampleDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:      "why-use-arc",
			Title:   "Why use Arc?",
			Content: "# Why use Arc?\nShared ownership.",
			Source:  domain.Source{Kind: domain.SourceCodeComment, Path: "/proj/src/lib.rs", Line: 12},
		},
		{
			ID:       "guide",
			Title:    "Guide",
			Content:  "Start here.",
			Source:   domain.Source{Kind: domain.SourceMarkdownFile, Path: "/proj/guide.md", Line: 1},
			Metadata: domain.Metadata{"author": "sam"},
		},
	}
}
