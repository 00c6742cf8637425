// Package file loads and writes the docwatch.toml site configuration.
package file
