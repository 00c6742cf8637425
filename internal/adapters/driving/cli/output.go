package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docwatch/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/docwatch/internal/core/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// printer writes human output, styled only when writing to a terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, color: isTerminal(w)}
}

func (p *printer) title(s string) string {
	if p.color {
		return titleStyle.Render(s)
	}
	return s
}

func (p *printer) dim(s string) string {
	if p.color {
		return dimStyle.Render(s)
	}
	return s
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// location formats a document's source position.
func location(doc *domain.Document) string {
	if doc.Source.Kind == domain.SourceMarkdownFile {
		return doc.Source.Path
	}
	return fmt.Sprintf("%s:%d", doc.Source.Path, doc.Source.Line)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

func documentJSON(doc *domain.Document, link string) httpapi.DocumentJSON {
	return httpapi.NewDocumentJSON(doc, link)
}
