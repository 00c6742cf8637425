package domain

import (
	"path/filepath"
	"strings"
)

// DocumentID uniquely identifies a document within the store.
// It is a slug of the document title, assigned once at extraction time.
type DocumentID string

// String returns the identifier as a plain string.
func (id DocumentID) String() string {
	return string(id)
}

// SourceKind identifies how a document was embedded in its file.
type SourceKind string

const (
	// SourceCodeComment is documentation found inside a marked comment.
	SourceCodeComment SourceKind = "code_comment"

	// SourceMarkdownFile is a standalone markdown file.
	SourceMarkdownFile SourceKind = "markdown_file"
)

// ByteRange is a half-open [Start, End) span of bytes within a file.
type ByteRange struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r ByteRange) Len() int {
	return r.End - r.Start
}

// Valid reports whether the range is ordered and fits a file of the given size.
func (r ByteRange) Valid(fileLen int) bool {
	return r.Start >= 0 && r.Start <= r.End && r.End <= fileLen
}

// Source records where a document was harvested from.
type Source struct {
	// Kind is the embedding style of the document.
	Kind SourceKind

	// Path is the file the document was extracted from.
	Path string

	// Line is the 1-based line the documentation starts on.
	Line int

	// ByteRange locates the documentation payload in the file, excluding
	// markers and header delimiters. Nil when unknown.
	ByteRange *ByteRange
}

// Metadata holds optional string attributes such as author, date or tags.
type Metadata map[string]string

// Clone returns an independent copy of the metadata.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Document is a unit of harvested documentation.
// Documents are values: once created they are never modified in place,
// only replaced or removed as a whole.
type Document struct {
	// ID is the slug identifier, unique within the store.
	ID DocumentID

	// Title is the human-readable title. Never empty.
	Title string

	// Content is the documentation body (markdown, or comment text with
	// the marker stripped).
	Content string

	// Source is where the document came from.
	Source Source

	// Metadata contains optional key-value attributes.
	Metadata Metadata
}

// Clone returns a deep copy so callers cannot alias store-owned state.
func (d Document) Clone() Document {
	out := d
	out.Metadata = d.Metadata.Clone()
	if d.Source.ByteRange != nil {
		br := *d.Source.ByteRange
		out.Source.ByteRange = &br
	}
	return out
}

// FromPath reports whether the document was extracted from path.
func (d *Document) FromPath(path string) bool {
	return d.Source.Path == path
}

// FileStem returns the base name of path without its extension.
// It is the last-resort title for documents with no better candidate.
func FileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
