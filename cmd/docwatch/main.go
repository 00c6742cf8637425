// Command docwatch harvests documentation from source trees and serves it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/docwatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docwatch/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/docwatch/internal/adapters/driven/glob"
	"github.com/custodia-labs/docwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docwatch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docwatch/internal/adapters/driven/tokenizer"
	"github.com/custodia-labs/docwatch/internal/adapters/driving/cli"
	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
	"github.com/custodia-labs/docwatch/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetRuntimeFactory(openRuntime)

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// runtime is an Engine plus the store it owns.
type runtime struct {
	*services.Engine
	closeStore func() error
}

func (r *runtime) Close() error {
	err := r.Engine.Close()
	if r.closeStore != nil {
		if cerr := r.closeStore(); err == nil {
			err = cerr
		}
	}
	return err
}

func openRuntime(path string) (cli.Runtime, error) {
	compiler := glob.Compiler{}

	cfg, err := file.NewLoader(compiler).Load(path)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	engine, err := services.NewEngine(cfg, services.EngineDeps{
		FS:        filesystem.New(),
		Store:     store,
		Tokenizer: tokenizer.New(),
		Compiler:  compiler,
		Version:   version,
	})
	if err != nil {
		if closeStore != nil {
			closeStore() //nolint:errcheck
		}
		return nil, err
	}

	return &runtime{Engine: engine, closeStore: closeStore}, nil
}

// openStore builds the configured DocumentStore. The returned close
// function is nil for stores holding no resources.
func openStore(kind domain.StoreKind) (driven.DocumentStore, func() error, error) {
	switch kind {
	case domain.StoreSQLite:
		s, err := sqlite.NewStore(sqlite.MemoryPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s.DocumentStore(), s.Close, nil
	case domain.StoreMemory, "":
		return memory.NewDocumentStore(), nil, nil
	default:
		return nil, nil, &domain.ConfigurationError{Reason: fmt.Sprintf("unknown store %q", kind), Err: domain.ErrInvalidInput}
	}
}
