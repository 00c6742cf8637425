package domain

import "fmt"

// ExtractionError pairs a file with the reason it could not be extracted.
type ExtractionError struct {
	Path string
	Err  error
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ExtractionError) Unwrap() error {
	return e.Err
}

// ExtractionResult is the outcome of extracting a batch of files.
// One failing file never aborts the batch.
type ExtractionResult struct {
	Documents []Document
	Errors    []ExtractionError
}

// Failed reports whether any file in the batch failed.
func (r *ExtractionResult) Failed() bool {
	return len(r.Errors) > 0
}

// ScanError pairs a configured directory with the walk failure under it.
type ScanError struct {
	Dir string
	Err error
}

func (e ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.Dir, e.Err)
}

func (e ScanError) Unwrap() error {
	return e.Err
}

// ScanResult is the outcome of walking the configured directories.
type ScanResult struct {
	Files  []string
	Errors []ScanError
}

// LoadReport summarises an initial bulk load.
type LoadReport struct {
	FilesScanned    int
	DocumentsStored int
	ScanErrors      []ScanError
	ExtractErrors   []ExtractionError
	InsertErrors    []ExtractionError
}

// Warnings returns the number of non-fatal problems encountered.
func (r *LoadReport) Warnings() int {
	return len(r.ScanErrors) + len(r.ExtractErrors) + len(r.InsertErrors)
}
