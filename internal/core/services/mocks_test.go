package services

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
)

// mockFileSystem is an in-memory file tree. Paths are slash-separated.
type mockFileSystem struct {
	mu      sync.Mutex
	files   map[string][]byte
	events  chan domain.FileEvent
	watchFn func() error
	walkErr map[string]error
}

func newMockFileSystem() *mockFileSystem {
	return &mockFileSystem{
		files:  make(map[string][]byte),
		events: make(chan domain.FileEvent, 16),
	}
}

func (m *mockFileSystem) write(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = []byte(content)
}

func (m *mockFileSystem) writeBytes(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
}

func (m *mockFileSystem) remove(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
}

func (m *mockFileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, &domain.FileAccessError{Path: path, Err: os.ErrNotExist}
	}
	return data, nil
}

func (m *mockFileSystem) Exists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok, nil
}

func (m *mockFileSystem) Walk(ctx context.Context, root string, matcher driven.Matcher, fn driven.WalkFunc) error {
	if err, ok := m.walkErr[root]; ok {
		return fn(root, err)
	}

	m.mu.Lock()
	var paths []string
	for p := range m.files {
		if strings.HasPrefix(p, root+"/") {
			paths = append(paths, p)
		}
	}
	m.mu.Unlock()
	sort.Strings(paths)

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		if matcher.Matches(filepath.ToSlash(rel)) {
			if err := fn(p, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *mockFileSystem) Watch(ctx context.Context, _ []driven.WatchTarget) (<-chan domain.FileEvent, error) {
	if m.watchFn != nil {
		if err := m.watchFn(); err != nil {
			return nil, err
		}
	}
	return m.events, nil
}

// suffixMatcher selects paths ending in one of its suffixes.
type suffixMatcher []string

func (s suffixMatcher) Matches(path string) bool {
	for _, suf := range s {
		if strings.HasSuffix(path, suf) {
			return true
		}
	}
	return false
}

// mockCompiler treats every pattern as "*<suffix>".
type mockCompiler struct {
	err error
}

func (c mockCompiler) Compile(patterns []string) (driven.Matcher, error) {
	if c.err != nil {
		return nil, c.err
	}
	var m suffixMatcher
	for _, p := range patterns {
		m = append(m, strings.TrimLeft(p, "*/"))
	}
	return m, nil
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// countingNotifier records change notifications.
type countingNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *countingNotifier) NotifyChanged() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
}

func (n *countingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}
