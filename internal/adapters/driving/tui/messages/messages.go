// Package messages defines the tea.Msg types exchanged between TUI views.
package messages

import (
	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// QueryChanged is sent when the search query text changes.
type QueryChanged struct {
	Query string
}

// SearchRequested is sent when a search should be performed.
type SearchRequested struct {
	Query   string
	Options domain.SearchOptions
}

// SearchCompleted is sent when a search finishes. Refresh marks a re-run
// of the current query after the document set changed.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Refresh bool
	Err     error
}

// ViewType identifies the active view.
type ViewType int

const (
	// ViewSearch is the query and result list.
	ViewSearch ViewType = iota
	// ViewDocContent is the document reader.
	ViewDocContent
)

// String returns a short name for the view.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewDocContent:
		return "document"
	default:
		return "unknown"
	}
}

// ViewChanged is sent to switch the active view.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred reports an error to the active view.
type ErrorOccurred struct {
	Err error
}

// Quit requests the program to exit.
type Quit struct{}

// DocumentSelected is sent when a result is opened.
type DocumentSelected struct {
	Document domain.Document
}

// DocumentContentLoaded carries the body of a document.
type DocumentContentLoaded struct {
	DocumentID domain.DocumentID
	Content    string
	Link       string
	Err        error
}

// DocumentsChanged is sent when the change feed reports new content.
type DocumentsChanged struct {
	Timestamp int64
}

// FeedClosed is sent when the change feed subscription ends.
type FeedClosed struct{}
