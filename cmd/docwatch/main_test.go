package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docwatch/internal/core/domain"
)

func TestOpenStore(t *testing.T) {
	store, closeStore, err := openStore(domain.StoreMemory)
	require.NoError(t, err)
	assert.IsType(t, &memory.DocumentStore{}, store)
	assert.Nil(t, closeStore)

	store, closeStore, err = openStore(domain.StoreSQLite)
	require.NoError(t, err)
	require.NotNil(t, store)
	require.NotNil(t, closeStore)
	assert.NoError(t, closeStore())

	_, _, err = openStore("redis")
	var cfgErr *domain.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestOpenRuntime(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Hello\n\nWorld.\n"), 0o644))
	config := filepath.Join(dir, "docwatch.toml")
	require.NoError(t, os.WriteFile(config, []byte(`title = "Demo"
store = "sqlite"

[[directory]]
paths = ["."]
globs = ["**/*.md"]
`), 0o644))

	rt, err := openRuntime(config)
	require.NoError(t, err)
	defer rt.Close() //nolint:errcheck

	report, err := rt.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, report.DocumentsStored)
	assert.Equal(t, "Demo", rt.Config().Title)

	doc, err := rt.Documents().Get(t.Context(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", doc.Title)
}

func TestOpenRuntime_MissingConfig(t *testing.T) {
	_, err := openRuntime(filepath.Join(t.TempDir(), "nope.toml"))

	assert.Error(t, err)
}
