package driven

import (
	"context"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// DocumentStore is a concurrent repository of documents keyed by id.
// Every operation is atomic with respect to the others; readers may run
// concurrently, writers are exclusive. The store never allocates ids.
type DocumentStore interface {
	// Insert stores doc, replacing any document with the same id.
	Insert(ctx context.Context, doc domain.Document) (domain.DocumentID, error)

	// Get retrieves a document by id. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id domain.DocumentID) (*domain.Document, error)

	// Contains reports whether a document with id exists.
	Contains(ctx context.Context, id domain.DocumentID) (bool, error)

	// List returns every document. Order is not guaranteed.
	List(ctx context.Context) ([]domain.Document, error)

	// Remove deletes a document and returns it.
	// Returns domain.ErrNotFound if absent.
	Remove(ctx context.Context, id domain.DocumentID) (*domain.Document, error)

	// Clear removes all documents.
	Clear(ctx context.Context) error

	// Len returns the number of stored documents.
	Len(ctx context.Context) (int, error)

	// IsEmpty reports whether the store holds no documents.
	IsEmpty(ctx context.Context) (bool, error)
}
