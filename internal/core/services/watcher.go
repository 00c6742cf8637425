package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
	"github.com/custodia-labs/docwatch/internal/logger"
)

// Notifier is told when the document set changed.
type Notifier interface {
	NotifyChanged()
}

// Watcher keeps the store in sync with files on disk. Each accepted
// change removes the file's documents and re-extracts it; removals skip
// the debounce table so a delete is never swallowed.
type Watcher struct {
	fs        driven.FileSystem
	store     driven.DocumentStore
	extractor *ExtractionService
	notifier  Notifier
	debouncer *Debouncer
	targets   []driven.WatchTarget

	mu      sync.Mutex
	running bool
	stopped bool
	stop    chan struct{}
	done    chan struct{}
	cancel  context.CancelFunc
}

// WatcherConfig holds the collaborators of a Watcher.
type WatcherConfig struct {
	FS        driven.FileSystem
	Store     driven.DocumentStore
	Extractor *ExtractionService
	Notifier  Notifier
	Debouncer *Debouncer
	Targets   []driven.WatchTarget
}

// NewWatcher creates a watcher. It does nothing until Start is called.
func NewWatcher(cfg WatcherConfig) *Watcher {
	if cfg.Debouncer == nil {
		cfg.Debouncer = NewDebouncer(domain.DefaultDebounce, nil)
	}
	return &Watcher{
		fs:        cfg.FS,
		store:     cfg.Store,
		extractor: cfg.Extractor,
		notifier:  cfg.Notifier,
		debouncer: cfg.Debouncer,
		targets:   cfg.Targets,
	}
}

// Start subscribes to filesystem events and processes them on a
// background goroutine. Setup errors are returned before the goroutine
// exists.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return domain.ErrWatcherStopped
	}
	if w.running {
		return domain.ErrWatcherRunning
	}

	watchCtx, cancel := context.WithCancel(ctx)
	events, err := w.fs.Watch(watchCtx, w.targets)
	if err != nil {
		cancel()
		return err
	}

	w.running = true
	w.stop = make(chan struct{})
	w.done = make(chan struct{})
	w.cancel = cancel

	go w.run(watchCtx, events)
	logger.Info("watching %d directories", len(w.targets))
	return nil
}

// Stop asks the loop to exit and blocks until it has. The event being
// processed, if any, completes first. Stopping twice is a no-op.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.stopped = true
		w.mu.Unlock()
		return
	}
	w.running = false
	w.stopped = true
	close(w.stop)
	w.cancel()
	done := w.done
	w.mu.Unlock()

	<-done
}

// Running reports whether the loop is active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) run(ctx context.Context, events <-chan domain.FileEvent) {
	defer close(w.done)

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			w.HandleEvent(ctx, ev)
		}
	}
}

// HandleEvent applies one filesystem event to the store and notifies
// once if any document changed. It reports whether anything changed.
func (w *Watcher) HandleEvent(ctx context.Context, ev domain.FileEvent) bool {
	changed := false
	for _, path := range ev.Paths {
		if ev.Kind == domain.FileRemoved {
			w.debouncer.Forget(path)
		} else if !w.debouncer.ShouldProcess(path) {
			logger.Debug("debounced %s event for %s", ev.Kind, path)
			continue
		}

		if w.syncFile(ctx, path) {
			changed = true
		}
	}

	if changed && w.notifier != nil {
		w.notifier.NotifyChanged()
	}
	return changed
}

// syncFile replaces the documents of path with a fresh extraction, or
// just removes them when the file is gone.
func (w *Watcher) syncFile(ctx context.Context, path string) bool {
	removed := w.removeDocumentsFor(ctx, path)

	exists, err := w.fs.Exists(path)
	if err != nil {
		logger.Warn("checking %s: %v", path, err)
		return removed > 0
	}
	if !exists {
		logger.Debug("%s deleted, removed %d documents", path, removed)
		return removed > 0
	}

	ids, err := storeIDs(ctx, w.store)
	if err != nil {
		logger.Warn("listing documents: %v", err)
		return removed > 0
	}

	result := w.extractor.ExtractFiles(ctx, []string{path}, ids)
	for _, e := range result.Errors {
		logger.Warn("re-extracting %s: %v", e.Path, e.Err)
	}

	inserted := 0
	for _, doc := range result.Documents {
		if _, err := w.store.Insert(ctx, doc); err != nil {
			logger.Warn("storing %s from %s: %v", doc.ID, path, err)
			continue
		}
		inserted++
	}

	if inserted > 0 {
		logger.Info("updated %d documents from %s", inserted, path)
	}
	return removed > 0 || inserted > 0
}

// removeDocumentsFor removes every document extracted from path.
func (w *Watcher) removeDocumentsFor(ctx context.Context, path string) int {
	docs, err := w.store.List(ctx)
	if err != nil {
		logger.Warn("listing documents for %s: %v", path, err)
		return 0
	}

	removed := 0
	for _, doc := range docs {
		if !doc.FromPath(path) {
			continue
		}
		if _, err := w.store.Remove(ctx, doc.ID); err != nil {
			logger.Debug("removing %s: %v", doc.ID, err)
			continue
		}
		removed++
	}
	return removed
}

// storeIDs returns the ids currently held by store.
func storeIDs(ctx context.Context, store driven.DocumentStore) (domain.IDSet, error) {
	docs, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := domain.NewIDSet()
	for _, doc := range docs {
		ids.Add(doc.ID)
	}
	return ids, nil
}
