// Package domain defines the core business entities for docwatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A unit of documentation harvested from a source file
//   - Source: Where a document came from (comment or markdown file)
//   - DocumentID: A slug derived from the document title
//   - ExtractionResult / ScanResult: Fail-tolerant batch outcomes
//   - ChangeMessage: Notifications fanned out to live listeners
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
