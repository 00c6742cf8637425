package driven

import (
	"context"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// WalkFunc is called for every matching file, or with a non-nil err for
// entries that could not be read. Returning an error stops the walk.
type WalkFunc func(path string, err error) error

// WatchTarget is a root directory and the matcher selecting files below it.
type WatchTarget struct {
	Root    string
	Matcher Matcher
}

// FileSystem abstracts the file operations the core performs.
type FileSystem interface {
	// ReadFile returns the raw bytes of path.
	// Failures are reported as *domain.FileAccessError.
	ReadFile(path string) ([]byte, error)

	// Exists reports whether path names an existing regular file.
	Exists(path string) (bool, error)

	// Walk visits every file under root whose root-relative path matches.
	Walk(ctx context.Context, root string, matcher Matcher, fn WalkFunc) error

	// Watch streams changes to matching files below each target.
	// Setup failures (unwatchable root) are returned immediately.
	// The channel is closed once ctx is done.
	Watch(ctx context.Context, targets []WatchTarget) (<-chan domain.FileEvent, error)
}
