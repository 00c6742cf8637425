// Package cli implements the docwatch command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docwatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driving"
	"github.com/custodia-labs/docwatch/internal/logger"
)

// version is set at build time.
var version = "dev"

var (
	configPath string
	verbose    bool
)

// Runtime is the document engine a command runs against.
type Runtime interface {
	// Load performs the initial scan and extraction.
	Load(ctx context.Context) (domain.LoadReport, error)
	// Start loads and then keeps the store in sync until Close.
	Start(ctx context.Context) (domain.LoadReport, error)
	Close() error

	Config() *domain.Config
	Documents() driving.DocumentService
	Search() driving.SearchService
	Feed() driving.ChangeFeed
}

// RuntimeFactory builds a Runtime from the configuration file at path.
type RuntimeFactory func(path string) (Runtime, error)

var newRuntime RuntimeFactory

// SetRuntimeFactory sets how commands obtain their Runtime.
func SetRuntimeFactory(f RuntimeFactory) {
	newRuntime = f
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "docwatch",
	Short: "Harvest and serve documentation from source trees",
	Long: `docwatch collects documentation from markdown files and from source code
comments carrying a marker (📖 by default), keeps it up to date as files
change, and serves it over HTTP, MCP or an interactive terminal UI.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", file.DefaultFileName, "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openRuntime builds the runtime for the configured file.
func openRuntime() (Runtime, error) {
	if newRuntime == nil {
		return nil, errors.New("runtime not configured")
	}
	return newRuntime(configPath)
}

// loadRuntime builds the runtime and performs the initial load, reporting
// per-file problems on stderr.
func loadRuntime(cmd *cobra.Command) (Runtime, error) {
	rt, err := openRuntime()
	if err != nil {
		return nil, err
	}
	report, err := rt.Load(cmd.Context())
	if err != nil {
		rt.Close() //nolint:errcheck
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	printWarnings(cmd.ErrOrStderr(), &report)
	return rt, nil
}

// startRuntime builds the runtime and starts watching.
func startRuntime(cmd *cobra.Command) (Runtime, error) {
	rt, err := openRuntime()
	if err != nil {
		return nil, err
	}
	report, err := rt.Start(cmd.Context())
	if err != nil {
		rt.Close() //nolint:errcheck
		return nil, fmt.Errorf("starting: %w", err)
	}
	printWarnings(cmd.ErrOrStderr(), &report)
	return rt, nil
}

func printWarnings(w io.Writer, report *domain.LoadReport) {
	for _, e := range report.ScanErrors {
		fmt.Fprintf(w, "warning: %v\n", e)
	}
	for _, e := range report.ExtractErrors {
		fmt.Fprintf(w, "warning: %v\n", e)
	}
	for _, e := range report.InsertErrors {
		fmt.Fprintf(w, "warning: %v\n", e)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
