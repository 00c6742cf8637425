package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Documents are copied on the way in and out so callers never share
// metadata maps with the store.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[domain.DocumentID]domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[domain.DocumentID]domain.Document),
	}
}

// Insert stores or replaces a document.
func (s *DocumentStore) Insert(_ context.Context, doc domain.Document) (domain.DocumentID, error) {
	if doc.ID == "" {
		return "", fmt.Errorf("%w: document without id", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = doc.Clone()
	return doc.ID, nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id domain.DocumentID) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.DocumentNotFound(id)
	}
	out := doc.Clone()
	return &out, nil
}

// Contains reports whether a document exists.
func (s *DocumentStore) Contains(_ context.Context, id domain.DocumentID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.documents[id]
	return ok, nil
}

// List returns a snapshot of every document.
func (s *DocumentStore) List(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc.Clone())
	}
	return docs, nil
}

// Remove deletes a document and returns it.
func (s *DocumentStore) Remove(_ context.Context, id domain.DocumentID) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.DocumentNotFound(id)
	}
	delete(s.documents, id)
	return &doc, nil
}

// Clear removes every document.
func (s *DocumentStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = make(map[domain.DocumentID]domain.Document)
	return nil
}

// Len returns the number of documents.
func (s *DocumentStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents), nil
}

// IsEmpty reports whether the store holds no documents.
func (s *DocumentStore) IsEmpty(ctx context.Context) (bool, error) {
	n, err := s.Len(ctx)
	return n == 0, err
}
