package services

import (
	"context"
	"path/filepath"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
)

// ScanService finds the files selected by the configured directories.
type ScanService struct {
	fs       driven.FileSystem
	compiler driven.PatternCompiler
}

// NewScanService creates a scan service.
func NewScanService(fs driven.FileSystem, compiler driven.PatternCompiler) *ScanService {
	return &ScanService{fs: fs, compiler: compiler}
}

// Targets compiles each directory's globs once per root path.
// Invalid patterns are a configuration error.
func (s *ScanService) Targets(dirs []domain.DirectoryConfig) ([]driven.WatchTarget, error) {
	if len(dirs) == 0 {
		return nil, &domain.ConfigurationError{Reason: "nothing to watch", Err: domain.ErrNoDirectories}
	}

	var targets []driven.WatchTarget
	for _, dir := range dirs {
		matcher, err := s.compiler.Compile(dir.Globs)
		if err != nil {
			return nil, &domain.ConfigurationError{Reason: "compiling globs", Err: err}
		}
		for _, root := range dir.Paths {
			targets = append(targets, driven.WatchTarget{Root: root, Matcher: matcher})
		}
	}
	return targets, nil
}

// ScanFiles walks every target and returns the matching files in walk
// order. A file reachable from several targets is listed once. Walk
// failures are collected, never raised.
func (s *ScanService) ScanFiles(ctx context.Context, targets []driven.WatchTarget) domain.ScanResult {
	var (
		result domain.ScanResult
		seen   = make(map[string]struct{})
	)

	for _, t := range targets {
		err := s.fs.Walk(ctx, t.Root, t.Matcher, func(path string, err error) error {
			if err != nil {
				result.Errors = append(result.Errors, domain.ScanError{Dir: t.Root, Err: err})
				return nil
			}
			key := filepath.Clean(path)
			if _, dup := seen[key]; dup {
				return nil
			}
			seen[key] = struct{}{}
			result.Files = append(result.Files, path)
			return nil
		})
		if err != nil {
			result.Errors = append(result.Errors, domain.ScanError{Dir: t.Root, Err: err})
		}
	}
	return result
}
