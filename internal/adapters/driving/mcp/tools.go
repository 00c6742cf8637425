package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// defaultSearchLimit caps search results when the caller gives no limit.
const defaultSearchLimit = 10

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"text to find in document titles and bodies"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	URI        string `json:"uri"`
	Score      int    `json:"score"`
	MatchType  string `json:"match_type"`
	FilePath   string `json:"file_path"`
	Line       int    `json:"line"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	ID string `json:"id" jsonschema:"the document id, as returned by search or list_documents"`
}

// DocumentOutput is a full document.
type DocumentOutput struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Kind       string            `json:"kind"`
	FilePath   string            `json:"file_path"`
	Line       int               `json:"line"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	SourceLink string            `json:"source_link,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Path string `json:"path,omitempty" jsonschema:"only list documents extracted from this file"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentSummary `json:"documents"`
	Count     int               `json:"count"`
}

// DocumentSummary identifies a document without its body.
type DocumentSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URI      string `json:"uri"`
	FilePath string `json:"file_path"`
	Line     int    `json:"line"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search documentation harvested from source comments and markdown files",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Fetch one document, including its markdown body and source location",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List every document, optionally restricted to one source file",
	}, s.handleListDocuments)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	results, err := s.ports.Search.Search(ctx, input.Query, domain.SearchOptions{Limit: limit})
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("searching %q: %w", input.Query, err)
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		doc := &results[i].Document
		output.Results[i] = SearchResultOutput{
			DocumentID: doc.ID.String(),
			Title:      doc.Title,
			URI:        documentURI(doc.ID),
			Score:      results[i].Score,
			MatchType:  string(results[i].MatchType),
			FilePath:   doc.Source.Path,
			Line:       doc.Source.Line,
		}
	}

	return nil, output, nil
}

// handleGetDocument handles the get_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	id := domain.DocumentID(strings.TrimSpace(input.ID))
	if id == "" {
		return nil, DocumentOutput{}, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}

	doc, err := s.ports.Document.Get(ctx, id)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	link, err := s.ports.Document.SourceLink(ctx, id)
	if err != nil {
		link = ""
	}

	return nil, DocumentOutput{
		ID:         doc.ID.String(),
		Title:      doc.Title,
		Content:    doc.Content,
		Kind:       string(doc.Source.Kind),
		FilePath:   doc.Source.Path,
		Line:       doc.Source.Line,
		Metadata:   doc.Metadata,
		SourceLink: link,
	}, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	var (
		docs []domain.Document
		err  error
	)
	if input.Path != "" {
		docs, err = s.ports.Document.ListBySource(ctx, input.Path)
	} else {
		docs, err = s.ports.Document.List(ctx)
	}
	if err != nil {
		return nil, ListDocumentsOutput{}, fmt.Errorf("listing documents: %w", err)
	}

	output := ListDocumentsOutput{
		Documents: summarise(docs),
		Count:     len(docs),
	}
	return nil, output, nil
}

func summarise(docs []domain.Document) []DocumentSummary {
	out := make([]DocumentSummary, len(docs))
	for i := range docs {
		out[i] = DocumentSummary{
			ID:       docs[i].ID.String(),
			Title:    docs[i].Title,
			URI:      documentURI(docs[i].ID),
			FilePath: docs[i].Source.Path,
			Line:     docs[i].Source.Line,
		}
	}
	return out
}
