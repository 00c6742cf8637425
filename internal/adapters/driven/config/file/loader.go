package file

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
)

// DefaultFileName is the config file looked up when none is given.
const DefaultFileName = "docwatch.toml"

// Ensure Loader implements the interface.
var _ driven.ConfigLoader = (*Loader)(nil)

// rawConfig mirrors the TOML layout of docwatch.toml.
type rawConfig struct {
	Title              string         `toml:"title"`
	Description        string         `toml:"description,omitempty"`
	SourceLinkTemplate string         `toml:"source_link_template,omitempty"`
	Markers            []string       `toml:"markers,omitempty"`
	Debounce           string         `toml:"debounce,omitempty"`
	KeepAlive          string         `toml:"keepalive,omitempty"`
	Store              string         `toml:"store,omitempty"`
	Server             rawServer      `toml:"server,omitempty"`
	Directories        []rawDirectory `toml:"directory"`
}

type rawServer struct {
	Addr string `toml:"addr,omitempty"`
}

type rawDirectory struct {
	Paths []string `toml:"paths"`
	Globs []string `toml:"globs"`
}

// Loader reads docwatch.toml files. Glob patterns are compiled with the
// supplied compiler so syntax errors surface at start-up.
type Loader struct {
	compiler driven.PatternCompiler
}

// NewLoader creates a loader. A nil compiler skips glob validation.
func NewLoader(compiler driven.PatternCompiler) *Loader {
	return &Loader{compiler: compiler}
}

// Load reads, defaults and validates the configuration at path.
// Relative directory paths are resolved against the file's directory.
func (l *Loader) Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.ConfigurationError{Reason: "no config file at " + path, Err: err}
		}
		return nil, &domain.ConfigurationError{
			Reason: "reading " + path,
			Err:    &domain.FileAccessError{Path: path, Err: err},
		}
	}

	var raw rawConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, &domain.ConfigurationError{
			Reason: "invalid TOML",
			Err:    &domain.ParseError{Subject: path, Err: err},
		}
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, &domain.ConfigurationError{Reason: "resolving config directory", Err: err}
	}

	cfg, err := raw.toDomain(root)
	if err != nil {
		return nil, err
	}
	*cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := l.checkGlobs(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) checkGlobs(cfg *domain.Config) error {
	if l.compiler == nil {
		return nil
	}
	for i, dir := range cfg.Directories {
		if _, err := l.compiler.Compile(dir.Globs); err != nil {
			return &domain.ConfigurationError{Reason: fmt.Sprintf("directory %d", i), Err: err}
		}
	}
	return nil
}

func (r *rawConfig) toDomain(root string) (*domain.Config, error) {
	debounce, err := parseDuration("debounce", r.Debounce)
	if err != nil {
		return nil, err
	}
	keepAlive, err := parseDuration("keepalive", r.KeepAlive)
	if err != nil {
		return nil, err
	}

	cfg := &domain.Config{
		Root:               root,
		Title:              r.Title,
		Description:        r.Description,
		SourceLinkTemplate: r.SourceLinkTemplate,
		Markers:            r.Markers,
		Debounce:           debounce,
		KeepAlive:          keepAlive,
		Store:              domain.StoreKind(r.Store),
		ServerAddr:         r.Server.Addr,
	}
	for _, d := range r.Directories {
		dir := domain.DirectoryConfig{Globs: d.Globs}
		for _, p := range d.Paths {
			if !filepath.IsAbs(p) {
				p = filepath.Join(root, p)
			}
			dir.Paths = append(dir.Paths, filepath.Clean(p))
		}
		cfg.Directories = append(cfg.Directories, dir)
	}
	return cfg, nil
}

func parseDuration(key, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, &domain.ConfigurationError{Reason: key, Err: &domain.ParseError{Subject: key, Err: err}}
	}
	if d < 0 {
		return 0, &domain.ConfigurationError{Reason: key + " must not be negative", Err: domain.ErrInvalidInput}
	}
	return d, nil
}

// Save writes cfg to path as TOML. Directory paths are written relative
// to the file's directory when they lie below it.
func Save(path string, cfg *domain.Config) error {
	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return err
	}

	raw := rawConfig{
		Title:              cfg.Title,
		Description:        cfg.Description,
		SourceLinkTemplate: cfg.SourceLinkTemplate,
		Markers:            cfg.Markers,
		Store:              string(cfg.Store),
		Server:             rawServer{Addr: cfg.ServerAddr},
	}
	if cfg.Debounce > 0 {
		raw.Debounce = cfg.Debounce.String()
	}
	if cfg.KeepAlive > 0 {
		raw.KeepAlive = cfg.KeepAlive.String()
	}
	for _, d := range cfg.Directories {
		dir := rawDirectory{Globs: d.Globs}
		for _, p := range d.Paths {
			if rel, err := filepath.Rel(root, p); err == nil && filepath.IsAbs(p) && !filepath.IsAbs(rel) && rel != ".." && !hasParentPrefix(rel) {
				p = rel
			}
			dir.Paths = append(dir.Paths, filepath.ToSlash(p))
		}
		raw.Directories = append(raw.Directories, dir)
	}

	data, err := toml.Marshal(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func hasParentPrefix(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}

// Starter returns the configuration written by "docwatch init".
func Starter(title string) *domain.Config {
	return &domain.Config{
		Title:   title,
		Markers: []string{domain.DefaultMarker},
		Store:   domain.StoreMemory,
		Directories: []domain.DirectoryConfig{
			{Paths: []string{"."}, Globs: []string{"**/*.md", "**/*.go", "**/*.rs", "**/*.py"}},
		},
	}
}
