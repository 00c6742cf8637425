package services

import (
	"sync"
	"time"

	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
)

// Debouncer drops repeated events for a path that arrive within a window
// of the last accepted event for the same path.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	clock  driven.Clock
	last   map[string]time.Time
}

// NewDebouncer creates a debouncer. A nil clock uses the wall clock.
func NewDebouncer(window time.Duration, clock driven.Clock) *Debouncer {
	if clock == nil {
		clock = SystemClock
	}
	return &Debouncer{
		window: window,
		clock:  clock,
		last:   make(map[string]time.Time),
	}
}

// ShouldProcess reports whether an event for path is accepted, recording
// the acceptance time when it is.
func (d *Debouncer) ShouldProcess(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	if last, ok := d.last[path]; ok && now.Sub(last) < d.window {
		return false
	}
	d.last[path] = now
	return true
}

// Forget drops the record for path, so the next event is accepted.
func (d *Debouncer) Forget(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.last, path)
}
