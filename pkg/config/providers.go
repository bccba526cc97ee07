package config

import (
	_ "embed"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/filesystem"
)

//go:embed embedded/defaults.toml
var embeddedDefaults []byte

// koanf providers for the two byte sources of the global configuration.
// Both hand bytes to a parser; neither produces a map itself.

type defaultsProvider struct{}

func (defaultsProvider) ReadBytes() ([]byte, error) { return embeddedDefaults, nil }

func (defaultsProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrConfig, "defaults provider requires a parser")
}

// fsProvider reads the configuration file through the deps filesystem so
// tests can load from memory.
type fsProvider struct {
	fs   filesystem.FS
	path string
}

func (p fsProvider) ReadBytes() ([]byte, error) { return p.fs.ReadFile(p.path) }

func (p fsProvider) Read() (map[string]interface{}, error) {
	return nil, errors.Newf(errors.ErrConfig, "%s requires a parser", p.path)
}
