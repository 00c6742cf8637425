package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

func TestExtractionService_ExtractFiles(t *testing.T) {
	fs := newMockFileSystem()
	fs.write("/proj/docs/intro.md", "# Intro\n\nWelcome.")
	fs.write("/proj/docs/again.md", "# Intro\n\nSame title.")
	fs.write("/proj/src/lib.rs", "fn a() {}\n// 📖 # Why use Arc?\nfn b() {}\n")

	svc := NewExtractionService(fs, nil, nil)
	ids := domain.NewIDSet()

	result := svc.ExtractFiles(context.Background(),
		[]string{"/proj/docs/intro.md", "/proj/docs/again.md", "/proj/src/lib.rs"}, ids)

	require.Empty(t, result.Errors)
	require.Len(t, result.Documents, 3)

	assert.Equal(t, domain.DocumentID("intro"), result.Documents[0].ID)
	assert.Equal(t, domain.DocumentID("intro-1"), result.Documents[1].ID)

	arc := result.Documents[2]
	assert.Equal(t, domain.DocumentID("why-use-arc"), arc.ID)
	assert.Equal(t, "Why use Arc?", arc.Title)
	assert.Equal(t, domain.SourceCodeComment, arc.Source.Kind)
	assert.Equal(t, 2, arc.Source.Line)

	src, _ := fs.ReadFile("/proj/src/lib.rs")
	br := arc.Source.ByteRange
	require.NotNil(t, br)
	assert.Equal(t, arc.Content, string(src[br.Start:br.End]))

	assert.True(t, ids.Has("intro") && ids.Has("intro-1") && ids.Has("why-use-arc"))
}

func TestExtractionService_LineCommentBodyIsSearchable(t *testing.T) {
	fs := newMockFileSystem()
	fs.write("/proj/src/lib.rs", "// 📖 # Why use Arc?\n// Arc provides thread-safe ownership.\nfn main() {}\n")

	result := NewExtractionService(fs, nil, nil).ExtractFiles(context.Background(), []string{"/proj/src/lib.rs"}, nil)

	require.Empty(t, result.Errors)
	require.Len(t, result.Documents, 1)
	doc := result.Documents[0]
	assert.Equal(t, "Why use Arc?", doc.Title)
	assert.Equal(t, "Why use Arc?\nArc provides thread-safe ownership.", doc.Content)

	results, err := NewSearchService(seedStore(t, doc)).Search(context.Background(), "thread-safe", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.MatchContent, results[0].MatchType)
}

func TestExtractionService_FailTolerant(t *testing.T) {
	fs := newMockFileSystem()
	fs.write("/proj/a.md", "# A")
	fs.writeBytes("/proj/bad.md", []byte{0xff, 0xfe, 0x00})
	fs.write("/proj/c.md", "# C")

	result := NewExtractionService(fs, nil, nil).ExtractFiles(context.Background(),
		[]string{"/proj/a.md", "/proj/bad.md", "/proj/c.md", "/proj/missing.md"}, nil)

	assert.Len(t, result.Documents, 2)
	require.Len(t, result.Errors, 2)
	assert.True(t, result.Failed())

	assert.Equal(t, "/proj/bad.md", result.Errors[0].Path)
	var decodeErr *domain.DecodeError
	assert.True(t, errors.As(result.Errors[0], &decodeErr))
	assert.True(t, errors.Is(result.Errors[0], domain.ErrInvalidEncoding))

	var accessErr *domain.FileAccessError
	assert.True(t, errors.As(result.Errors[1], &accessErr))
	assert.True(t, errors.Is(result.Errors[1], os.ErrNotExist))
}

func TestExtractionService_MalformedHeaderStillExtracts(t *testing.T) {
	fs := newMockFileSystem()
	fs.write("/proj/notes.md", "---\ntitle: [unclosed\n---\n# Notes\nbody")

	result := NewExtractionService(fs, nil, nil).ExtractFiles(context.Background(), []string{"/proj/notes.md"}, nil)

	require.Empty(t, result.Errors)
	require.Len(t, result.Documents, 1)
	assert.Equal(t, "Notes", result.Documents[0].Title)
	assert.Empty(t, result.Documents[0].Metadata)
}

func TestExtractionService_CustomMarkers(t *testing.T) {
	fs := newMockFileSystem()
	fs.write("/proj/main.py", "# DOC: Setup\n# 📖 Ignored\n")

	result := NewExtractionService(fs, nil, []string{"DOC:"}).ExtractFiles(context.Background(), []string{"/proj/main.py"}, nil)

	require.Len(t, result.Documents, 1)
	assert.Equal(t, "Setup", result.Documents[0].Title)
}

func TestExtractionService_NoDocumentsIsNotAnError(t *testing.T) {
	fs := newMockFileSystem()
	fs.write("/proj/plain.go", "package plain\n")

	result := NewExtractionService(fs, nil, nil).ExtractFiles(context.Background(), []string{"/proj/plain.go"}, nil)

	assert.Empty(t, result.Documents)
	assert.Empty(t, result.Errors)
}
