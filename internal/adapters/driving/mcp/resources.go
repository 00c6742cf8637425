package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docwatch resources.
	uriScheme = "docwatch://"

	documentsURI = uriScheme + "documents"
	siteURI      = uriScheme + "site"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         siteURI,
		Name:        "site",
		Description: "Title, description and version of the documentation site",
		MIMEType:    "application/json",
	}, s.handleSiteResource)

	s.server.AddResource(&mcp.Resource{
		URI:         documentsURI,
		Name:        "documents",
		Description: "Index of every harvested document",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: documentsURI + "/{id}",
		Name:        "document-content",
		Description: "Markdown body of a single document",
		MIMEType:    "text/markdown",
	}, s.handleDocumentContentResource)
}

// handleSiteResource describes the site.
func (s *Server) handleSiteResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	info := s.ports.Document.SiteInfo()
	return jsonResource(req.Params.URI, struct {
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		Version     string `json:"version,omitempty"`
	}{info.Title, info.Description, info.Version})
}

// handleDocumentsResource lists every document.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return jsonResource(req.Params.URI, summarise(docs))
}

// handleDocumentContentResource returns the body of a document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractDocumentID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Document.GetContent(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting document content: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     content,
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// documentURI is the resource URI of a document.
func documentURI(id domain.DocumentID) string {
	return documentsURI + "/" + id.String()
}

// extractDocumentID extracts the id from a URI like docwatch://documents/{id}.
func extractDocumentID(uri string) domain.DocumentID {
	const prefix = documentsURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return domain.DocumentID(id)
}
