package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected domain.DocumentID
	}{
		{name: "valid document URI", uri: "docwatch://documents/why-use-arc", expected: "why-use-arc"},
		{name: "invalid prefix", uri: "file://documents/why-use-arc", expected: ""},
		{name: "index URI", uri: "docwatch://documents", expected: ""},
		{name: "nested path", uri: "docwatch://documents/a/b", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleSiteResource(t *testing.T) {
	docs := &mockDocumentService{site: domain.SiteInfo{Title: "Handbook", Version: "1.0.0"}}
	server := newTestServer(t, &mockSearchService{}, docs)

	result, err := server.handleSiteResource(context.Background(), makeReadResourceRequest(siteURI))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.JSONEq(t, `{"title":"Handbook","version":"1.0.0"}`, result.Contents[0].Text)
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists documents", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, &mockDocumentService{documents: sampleDocuments()})

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest(documentsURI))
		require.NoError(t, err)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var summaries []DocumentSummary
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &summaries))
		require.Len(t, summaries, 2)
		assert.Equal(t, "docwatch://documents/guide", summaries[1].URI)
	})

	t.Run("service error", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, &mockDocumentService{err: errors.New("boom")})

		_, err := server.handleDocumentsResource(ctx, makeReadResourceRequest(documentsURI))
		assert.ErrorContains(t, err, "boom")
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, &mockSearchService{}, &mockDocumentService{documents: sampleDocuments()})

	t.Run("returns markdown", func(t *testing.T) {
		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("docwatch://documents/why-use-arc"))
		require.NoError(t, err)
		assert.Equal(t, "# Why use Arc?\nShared ownership.", result.Contents[0].Text)
		assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("docwatch://documents/missing"))
		require.Error(t, err)
	})

	t.Run("malformed uri", func(t *testing.T) {
		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("docwatch://elsewhere"))
		require.Error(t, err)
	})
}
