package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedLanguage indicates no lexical grammar exists for a language hint.
	// Extraction treats it as a signal to use heuristics, never as a failure.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrInvalidEncoding indicates file content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid utf-8 content")

	// ErrWatcherRunning indicates Start was called on a running watcher.
	ErrWatcherRunning = errors.New("watcher already running")

	// ErrWatcherStopped indicates the watcher has already been stopped.
	ErrWatcherStopped = errors.New("watcher stopped")
)

// FileAccessError reports a failure to read or stat a file.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("accessing %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// DecodeError reports file content that is not valid UTF-8.
type DecodeError struct {
	Path string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, ErrInvalidEncoding)
}

func (e *DecodeError) Unwrap() error {
	return ErrInvalidEncoding
}

// ParseError reports malformed structured input such as a metadata
// header or a glob pattern.
type ParseError struct {
	// Subject names what was being parsed (a path, a pattern, ...).
	Subject string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Subject, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a missing document or file at lookup time.
// It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// Is lets errors.Is(err, ErrNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConfigurationError reports an unusable configuration.
// It is only ever returned at start-up.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Reason, e.Err)
	}
	return "configuration: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DocumentNotFound builds the NotFoundError for a missing document.
func DocumentNotFound(id DocumentID) error {
	return &NotFoundError{Kind: "document", Key: string(id)}
}

// IsNotFound reports whether err is, or wraps, a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
