package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// setupTestStore creates an in-memory SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	store, err := NewStore("")
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
	}
	return store, cleanup
}

func commentDoc(id, title string) domain.Document {
	return domain.Document{
		ID:      domain.DocumentID(id),
		Title:   title,
		Content: title + "\nbody",
		Source: domain.Source{
			Kind:      domain.SourceCodeComment,
			Path:      "/src/lib.rs",
			Line:      12,
			ByteRange: &domain.ByteRange{Start: 100, End: 120},
		},
	}
}

func TestNewStore_InMemory(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, MemoryPath, store.Path())

	v, err := store.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestNewStore_FileMigratesOnce(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "docwatch-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "docs.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	_, err = store.DocumentStore().Insert(context.Background(), commentDoc("a", "A"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.DocumentStore().Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDocumentStore_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	docs := store.DocumentStore()
	ctx := context.Background()

	withMeta := domain.Document{
		ID:       "intro",
		Title:    "Intro",
		Content:  "Hello",
		Source:   domain.Source{Kind: domain.SourceMarkdownFile, Path: "/docs/intro.md", Line: 1},
		Metadata: domain.Metadata{"author": "Ada", "draft": "false"},
	}

	for _, doc := range []domain.Document{commentDoc("arc", "Why use Arc?"), withMeta} {
		id, err := docs.Insert(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, doc.ID, id)

		got, err := docs.Get(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, doc, *got)
	}
}

func TestDocumentStore_Upsert(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	docs := store.DocumentStore()
	ctx := context.Background()

	_, err := docs.Insert(ctx, commentDoc("arc", "Old"))
	require.NoError(t, err)
	_, err = docs.Insert(ctx, commentDoc("arc", "New"))
	require.NoError(t, err)

	got, err := docs.Get(ctx, "arc")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)

	n, err := docs.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDocumentStore_Remove(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	docs := store.DocumentStore()
	ctx := context.Background()

	_, err := docs.Insert(ctx, commentDoc("arc", "Arc"))
	require.NoError(t, err)

	removed, err := docs.Remove(ctx, "arc")
	require.NoError(t, err)
	assert.Equal(t, "Arc", removed.Title)

	ok, err := docs.Contains(ctx, "arc")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = docs.Remove(ctx, "arc")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = docs.Get(ctx, "arc")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDocumentStore_ListAndClear(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	docs := store.DocumentStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := docs.Insert(ctx, commentDoc(id, id))
		require.NoError(t, err)
	}

	all, err := docs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, docs.Clear(ctx))
	empty, err := docs.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestDocumentStore_InsertRejectsEmptyID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.DocumentStore().Insert(context.Background(), domain.Document{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
