package driving

import (
	"context"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// DocumentService exposes the document set to transports.
type DocumentService interface {
	// Get retrieves a document by id.
	Get(ctx context.Context, id domain.DocumentID) (*domain.Document, error)

	// List returns all documents ordered by title, then id.
	List(ctx context.Context) ([]domain.Document, error)

	// ListBySource returns documents extracted from path.
	ListBySource(ctx context.Context, path string) ([]domain.Document, error)

	// GetContent returns the body of a document.
	GetContent(ctx context.Context, id domain.DocumentID) (string, error)

	// SourceLink returns the rendered source link for a document,
	// or "" when no template is configured.
	SourceLink(ctx context.Context, id domain.DocumentID) (string, error)

	// SiteInfo describes the documentation site.
	SiteInfo() domain.SiteInfo
}
