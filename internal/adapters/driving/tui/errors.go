package tui

import "errors"

// Errors returned when building the TUI.
var (
	// ErrMissingSearchService is returned when no search service is wired.
	ErrMissingSearchService = errors.New("tui: search service is required")

	// ErrMissingDocumentService is returned when no document service is wired.
	ErrMissingDocumentService = errors.New("tui: document service is required")

	// ErrInvalidPorts is returned when ports is nil.
	ErrInvalidPorts = errors.New("tui: invalid ports configuration")
)
