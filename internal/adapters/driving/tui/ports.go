// Package tui provides an interactive terminal browser for the harvested
// documentation. It is a driving adapter over the core services.
package tui

import (
	"github.com/custodia-labs/docwatch/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Search ranks documents for the query box.
	Search driving.SearchService

	// Document loads document bodies and source links.
	Document driving.DocumentService

	// Feed delivers change notifications. Optional: without it the
	// results are not refreshed when files change.
	Feed driving.ChangeFeed
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	document driving.DocumentService,
	feed driving.ChangeFeed,
) *Ports {
	return &Ports{
		Search:   search,
		Document: document,
		Feed:     feed,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
