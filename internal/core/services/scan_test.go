package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

func TestScanService_Targets(t *testing.T) {
	svc := NewScanService(newMockFileSystem(), mockCompiler{})

	targets, err := svc.Targets([]domain.DirectoryConfig{
		{Paths: []string{"/a", "/b"}, Globs: []string{"*.md"}},
		{Paths: []string{"/c"}, Globs: []string{"*.rs"}},
	})
	require.NoError(t, err)
	require.Len(t, targets, 3)
	assert.Equal(t, "/b", targets[1].Root)
	assert.True(t, targets[2].Matcher.Matches("x.rs"))
}

func TestScanService_TargetsErrors(t *testing.T) {
	var cfgErr *domain.ConfigurationError

	_, err := NewScanService(newMockFileSystem(), mockCompiler{}).Targets(nil)
	require.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, domain.ErrNoDirectories)

	parseErr := &domain.ParseError{Subject: "glob", Err: errors.New("bad")}
	_, err = NewScanService(newMockFileSystem(), mockCompiler{err: parseErr}).Targets(
		[]domain.DirectoryConfig{{Paths: []string{"/a"}, Globs: []string{"["}}})
	require.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, parseErr)
}

func TestScanService_ScanFiles(t *testing.T) {
	fs := newMockFileSystem()
	fs.write("/proj/README.md", "x")
	fs.write("/proj/src/lib.rs", "x")
	fs.write("/proj/src/main.go", "x")
	fs.walkErr = map[string]error{"/gone": &domain.FileAccessError{Path: "/gone", Err: os.ErrNotExist}}

	svc := NewScanService(fs, mockCompiler{})
	targets, err := svc.Targets([]domain.DirectoryConfig{
		{Paths: []string{"/proj", "/proj/src", "/gone"}, Globs: []string{"*.rs", "*.md"}},
	})
	require.NoError(t, err)

	result := svc.ScanFiles(context.Background(), targets)

	assert.Equal(t, []string{"/proj/README.md", "/proj/src/lib.rs"}, result.Files)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "/gone", result.Errors[0].Dir)
	assert.ErrorIs(t, result.Errors[0], os.ErrNotExist)
}
