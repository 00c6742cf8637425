package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/logger"
)

// DocumentJSON is the wire form of a document.
type DocumentJSON struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	Source     SourceJSON      `json:"source"`
	Metadata   domain.Metadata `json:"metadata,omitempty"`
	SourceLink string          `json:"source_link,omitempty"`
}

// SourceJSON is the wire form of a document source.
type SourceJSON struct {
	Type       string         `json:"type"`
	FilePath   string         `json:"file_path"`
	LineNumber int            `json:"line_number"`
	ByteRange  *ByteRangeJSON `json:"byte_range,omitempty"`
}

// ByteRangeJSON is a half-open byte span.
type ByteRangeJSON struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SiteJSON describes the site.
type SiteJSON struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// SearchResultJSON is one ranked hit.
type SearchResultJSON struct {
	Document  DocumentJSON `json:"document"`
	Score     int          `json:"score"`
	MatchType string       `json:"match_type"`
}

// SearchResponseJSON is the body of /api/search.
type SearchResponseJSON struct {
	Query   string             `json:"query"`
	Results []SearchResultJSON `json:"results"`
}

type errorJSON struct {
	Error string `json:"error"`
}

// NewDocumentJSON converts doc to its wire form. link may be empty.
func NewDocumentJSON(doc *domain.Document, link string) DocumentJSON {
	out := DocumentJSON{
		ID:      doc.ID.String(),
		Title:   doc.Title,
		Content: doc.Content,
		Source: SourceJSON{
			Type:       string(doc.Source.Kind),
			FilePath:   doc.Source.Path,
			LineNumber: doc.Source.Line,
		},
		Metadata:   doc.Metadata,
		SourceLink: link,
	}
	if br := doc.Source.ByteRange; br != nil {
		out.Source.ByteRange = &ByteRangeJSON{Start: br.Start, End: br.End}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("writing response: %v", err)
	}
}
