package driven

import "github.com/custodia-labs/docwatch/internal/core/domain"

// ConfigLoader reads the site configuration.
type ConfigLoader interface {
	// Load reads, defaults and validates the configuration at path.
	// Failures are reported as *domain.ConfigurationError.
	Load(path string) (*domain.Config, error)
}
