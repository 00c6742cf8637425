package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docwatch/internal/adapters/driven/config/file"
)

var initCmd = &cobra.Command{
	Use:   "init [title]",
	Short: "Write a starter configuration file",
	Long: `Writes a starter docwatch.toml (or the file named by --config) that
collects markdown, Go, Rust and Python documentation below the current
directory. An existing file is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", configPath, err)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	title := filepath.Base(filepath.Dir(path))
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		title = strings.TrimSpace(args[0])
	}

	cfg := file.Starter(title)
	if err := file.Save(path, cfg); err != nil {
		return err
	}

	cmd.Printf("Wrote %s\n", path)
	return nil
}
