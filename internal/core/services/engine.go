package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
	"github.com/custodia-labs/docwatch/internal/core/ports/driving"
	"github.com/custodia-labs/docwatch/internal/logger"
)

// EngineDeps are the driven adapters an Engine runs on.
type EngineDeps struct {
	FS        driven.FileSystem
	Store     driven.DocumentStore
	Tokenizer driven.Tokenizer
	Compiler  driven.PatternCompiler
	Clock     driven.Clock
	Version   string
}

// Engine owns the document store and everything that feeds it: the
// initial load, the watcher and the change broadcaster. Transports hold
// an Engine and reach the store only through its services.
type Engine struct {
	config      *domain.Config
	store       driven.DocumentStore
	targets     []driven.WatchTarget
	scan        *ScanService
	extraction  *ExtractionService
	broadcaster *Broadcaster
	watcher     *Watcher
	documents   *DocumentService
	search      *SearchService

	mu        sync.Mutex
	keepAlive context.CancelFunc
	wg        sync.WaitGroup
}

// NewEngine validates cfg, compiles its globs and wires the services.
func NewEngine(cfg *domain.Config, deps EngineDeps) (*Engine, error) {
	if cfg == nil {
		return nil, &domain.ConfigurationError{Reason: "missing configuration", Err: domain.ErrInvalidInput}
	}
	withDefaults := cfg.WithDefaults()
	cfg = &withDefaults
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clock := deps.Clock
	if clock == nil {
		clock = SystemClock
	}

	scan := NewScanService(deps.FS, deps.Compiler)
	targets, err := scan.Targets(cfg.Directories)
	if err != nil {
		return nil, err
	}

	extraction := NewExtractionService(deps.FS, deps.Tokenizer, cfg.Markers)
	broadcaster := NewBroadcaster(clock)

	return &Engine{
		config:      cfg,
		store:       deps.Store,
		targets:     targets,
		scan:        scan,
		extraction:  extraction,
		broadcaster: broadcaster,
		watcher: NewWatcher(WatcherConfig{
			FS:        deps.FS,
			Store:     deps.Store,
			Extractor: extraction,
			Notifier:  broadcaster,
			Debouncer: NewDebouncer(cfg.Debounce, clock),
			Targets:   targets,
		}),
		documents: NewDocumentService(deps.Store, cfg, deps.Version),
		search:    NewSearchService(deps.Store),
	}, nil
}

// Load scans the configured directories, extracts every matching file
// and inserts the documents. Per-file problems are reported, not returned.
func (e *Engine) Load(ctx context.Context) (domain.LoadReport, error) {
	var report domain.LoadReport

	logger.Section("Scan")
	scanned := e.scan.ScanFiles(ctx, e.targets)
	report.FilesScanned = len(scanned.Files)
	report.ScanErrors = scanned.Errors
	if err := ctx.Err(); err != nil {
		return report, err
	}

	existing, err := storeIDs(ctx, e.store)
	if err != nil {
		return report, err
	}

	logger.Section("Extract")
	extracted := e.extraction.ExtractFiles(ctx, scanned.Files, existing)
	report.ExtractErrors = extracted.Errors

	for _, doc := range extracted.Documents {
		if _, err := e.store.Insert(ctx, doc); err != nil {
			report.InsertErrors = append(report.InsertErrors, domain.ExtractionError{Path: doc.Source.Path, Err: err})
			continue
		}
		report.DocumentsStored++
	}

	logger.Info("loaded %d documents from %d files (%d warnings)",
		report.DocumentsStored, report.FilesScanned, report.Warnings())
	return report, ctx.Err()
}

// Start loads the store, starts the watcher and the keep-alive loop.
func (e *Engine) Start(ctx context.Context) (domain.LoadReport, error) {
	report, err := e.Load(ctx)
	if err != nil {
		return report, err
	}
	if err := e.watcher.Start(ctx); err != nil {
		return report, err
	}

	kaCtx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.keepAlive = cancel
	e.mu.Unlock()

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.broadcaster.RunKeepAlive(kaCtx, e.config.KeepAlive)
	}()
	return report, nil
}

// Close stops the watcher, blocking until it has exited, and the
// keep-alive loop.
func (e *Engine) Close() error {
	e.watcher.Stop()

	e.mu.Lock()
	if e.keepAlive != nil {
		e.keepAlive()
		e.keepAlive = nil
	}
	e.mu.Unlock()

	e.wg.Wait()
	return nil
}

// Config returns the effective configuration.
func (e *Engine) Config() *domain.Config { return e.config }

// Documents returns the document service.
func (e *Engine) Documents() driving.DocumentService { return e.documents }

// Search returns the search service.
func (e *Engine) Search() driving.SearchService { return e.search }

// Feed returns the change feed.
func (e *Engine) Feed() driving.ChangeFeed { return e.broadcaster }

// Watcher returns the change watcher.
func (e *Engine) Watcher() *Watcher { return e.watcher }

