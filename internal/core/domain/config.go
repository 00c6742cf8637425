package domain

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults applied by Config.WithDefaults.
const (
	DefaultMarker            = "📖"
	DefaultDebounce          = 100 * time.Millisecond
	DefaultKeepAliveInterval = 30 * time.Second
	DefaultServerAddr        = "127.0.0.1:3333"
)

// StoreKind selects the DocumentStore backend.
type StoreKind string

const (
	// StoreMemory is the map-backed store.
	StoreMemory StoreKind = "memory"

	// StoreSQLite is the in-memory SQLite store.
	StoreSQLite StoreKind = "sqlite"
)

// DirectoryConfig maps a set of root paths to the glob patterns
// selecting files beneath them.
type DirectoryConfig struct {
	Paths []string
	Globs []string
}

// Config is the site configuration, usually loaded from docwatch.toml.
type Config struct {
	// Root is the directory relative paths were resolved against,
	// normally the directory holding the config file.
	Root string

	Title              string
	Description        string
	SourceLinkTemplate string
	Markers            []string
	Debounce           time.Duration
	KeepAlive          time.Duration
	Store              StoreKind
	ServerAddr         string
	Directories        []DirectoryConfig
}

// WithDefaults returns a copy of c with zero-valued options filled in.
func (c Config) WithDefaults() Config {
	if len(c.Markers) == 0 {
		c.Markers = []string{DefaultMarker}
	}
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if c.KeepAlive <= 0 {
		c.KeepAlive = DefaultKeepAliveInterval
	}
	if c.Store == "" {
		c.Store = StoreMemory
	}
	if c.ServerAddr == "" {
		c.ServerAddr = DefaultServerAddr
	}
	return c
}

// Validate checks the structural requirements of the configuration.
// Glob syntax is validated by the matcher when patterns are compiled.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return &ConfigurationError{Reason: "title is required"}
	}
	if len(c.Directories) == 0 {
		return &ConfigurationError{Reason: "at least one [[directory]] entry is required"}
	}
	for i, dir := range c.Directories {
		if len(dir.Paths) == 0 {
			return &ConfigurationError{Reason: "directory " + strconv.Itoa(i) + " has no paths"}
		}
		if len(dir.Globs) == 0 {
			return &ConfigurationError{Reason: "directory " + strconv.Itoa(i) + " has no globs"}
		}
	}
	for _, m := range c.Markers {
		if strings.TrimSpace(m) == "" {
			return &ConfigurationError{Reason: "markers must not be blank"}
		}
	}
	switch c.Store {
	case "", StoreMemory, StoreSQLite:
	default:
		return &ConfigurationError{
			Reason: "unknown store " + strconv.Quote(string(c.Store)),
			Err:    ErrInvalidInput,
		}
	}
	return nil
}

// SourceLink expands the source link template for doc.
// {path} and {line} are substituted; an empty template yields "".
// Paths below Root are expanded relative to it.
func (c *Config) SourceLink(doc *Document) string {
	if c.SourceLinkTemplate == "" || doc == nil {
		return ""
	}
	path := doc.Source.Path
	if c.Root != "" {
		if rel, err := filepath.Rel(c.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	r := strings.NewReplacer(
		"{path}", filepath.ToSlash(path),
		"{line}", strconv.Itoa(doc.Source.Line),
	)
	return r.Replace(c.SourceLinkTemplate)
}

// ErrNoDirectories is returned when a scan is requested with nothing to scan.
var ErrNoDirectories = errors.New("no directories configured")
