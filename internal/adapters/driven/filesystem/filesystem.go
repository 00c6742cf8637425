// Package filesystem implements file reads, directory walks and change
// notification on the local disk.
package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
	"github.com/custodia-labs/docwatch/internal/logger"
)

// Verify interface compliance.
var _ driven.FileSystem = (*FS)(nil)

// eventBuffer is the capacity of the channel returned by Watch.
const eventBuffer = 64

// FS is the local filesystem.
type FS struct {
	// errLog throttles repeated watcher errors.
	errLog rate.Sometimes
}

// New creates a local filesystem adapter.
func New() *FS {
	return &FS{errLog: rate.Sometimes{Interval: 10 * time.Second}}
}

// ReadFile returns the contents of path.
func (f *FS) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.FileAccessError{Path: path, Err: err}
	}
	return data, nil
}

// Exists reports whether path is an existing regular file.
func (f *FS) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &domain.FileAccessError{Path: path, Err: err}
	}
	return info.Mode().IsRegular(), nil
}

// Walk visits matching files below root. Hidden directories are skipped.
// Unreadable entries are passed to fn with their error; the walk goes on
// unless fn returns an error.
func (f *FS) Walk(ctx context.Context, root string, matcher driven.Matcher, fn driven.WalkFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if cbErr := fn(path, &domain.FileAccessError{Path: path, Err: err}); cbErr != nil {
				return cbErr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || isHidden(d.Name()) {
			return nil
		}

		if matcher.Matches(relative(root, path)) {
			return fn(path, nil)
		}
		return nil
	})
}

// Watch starts an fsnotify watcher over every target directory tree.
func (f *FS) Watch(ctx context.Context, targets []driven.WatchTarget) (<-chan domain.FileEvent, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, t := range targets {
		if err := addRecursive(watcher, t.Root); err != nil {
			_ = watcher.Close()
			return nil, &domain.FileAccessError{Path: t.Root, Err: err}
		}
	}

	out := make(chan domain.FileEvent, eventBuffer)
	go f.processEvents(ctx, watcher, targets, out)
	return out, nil
}

func (f *FS) processEvents(ctx context.Context, watcher *fsnotify.Watcher, targets []driven.WatchTarget, out chan<- domain.FileEvent) {
	defer close(out)
	defer watcher.Close()

	send := func(ev domain.FileEvent) bool {
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if isHidden(filepath.Base(event.Name)) {
					continue
				}
				// Files may land in a new directory before it is watched.
				if err := addRecursive(watcher, event.Name); err != nil {
					logger.Warn("watch %s: %v", event.Name, err)
				}
				for _, ev := range existingFiles(event.Name, targets) {
					if !send(ev) {
						return
					}
				}
				continue
			}

			if ev, ok := handleFsEvent(event, targets); ok {
				if !send(ev) {
					return
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			f.errLog.Do(func() {
				logger.Error("file watcher: %v", err)
			})
		}
	}
}

// handleFsEvent converts an fsnotify event into a FileEvent for a matching
// file. Chmod-only events, hidden files and unmatched paths are dropped.
func handleFsEvent(event fsnotify.Event, targets []driven.WatchTarget) (domain.FileEvent, bool) {
	var kind domain.FileEventKind
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		kind = domain.FileRemoved
	case event.Has(fsnotify.Create):
		kind = domain.FileCreated
	case event.Has(fsnotify.Write):
		kind = domain.FileModified
	default:
		return domain.FileEvent{}, false
	}

	if !matchesTarget(event.Name, targets) {
		return domain.FileEvent{}, false
	}
	return domain.FileEvent{Kind: kind, Paths: []string{event.Name}}, true
}

// matchesTarget reports whether path lies below a target root, outside any
// hidden entry, and matches that target's globs.
func matchesTarget(path string, targets []driven.WatchTarget) bool {
	for _, t := range targets {
		rel, ok := within(t.Root, path)
		if !ok || hasHiddenPart(rel) {
			continue
		}
		if t.Matcher.Matches(rel) {
			return true
		}
	}
	return false
}

// existingFiles lists matching files already present below a new directory.
func existingFiles(dir string, targets []driven.WatchTarget) []domain.FileEvent {
	var events []domain.FileEvent
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != dir && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && matchesTarget(path, targets) {
			events = append(events, domain.FileEvent{Kind: domain.FileCreated, Paths: []string{path}})
		}
		return nil
	})
	return events
}

// addRecursive watches dir and every non-hidden directory below it.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			if path == dir {
				return err
			}
			logger.Warn("watch %s: %v", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

func hasHiddenPart(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if isHidden(part) {
			return true
		}
	}
	return false
}

// relative returns path relative to root with forward slashes.
func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// within reports whether path lies below root and returns the relative path.
func within(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
