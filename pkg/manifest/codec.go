package manifest

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/filesystem"
	"github.com/arthur-debert/deps/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a manifest serialization format
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFor picks the codec from the file extension. Anything that is not
// .yaml or .yml is TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Exists reports whether a manifest file is present at path.
func Exists(fsys filesystem.FS, path string) (bool, error) {
	exists, err := filesystem.Exists(fsys, path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileSystem, "failed to stat manifest %s", path)
	}
	return exists, nil
}

// Load reads and parses the manifest at path.
func Load(fsys filesystem.FS, path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest").With().Str("path", path).Logger()

	exists, err := Exists(fsys, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Newf(errors.ErrManifest, "manifest %s not found", path).
			WithDetail("path", path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifest, "failed to read manifest %s", path)
	}

	m, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfig, "failed to parse manifest %s", path)
	}

	logger.Debug().
		Str("project", m.Project.Name).
		Int("dependencies", len(m.Dependencies)).
		Msg("Manifest loaded")

	return m, nil
}

// Save writes m to path, refusing to replace an existing file.
func Save(fsys filesystem.FS, path string, m *Manifest) error {
	exists, err := Exists(fsys, path)
	if err != nil {
		return err
	}
	if exists {
		return errors.Newf(errors.ErrManifestFound, "manifest %s already exists", path).
			WithDetail("path", path)
	}

	data, err := Encode(m, FormatFor(path))
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfig, "failed to serialize manifest")
	}

	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileSystem, "failed to write manifest %s", path)
	}

	logger := logging.GetLogger("manifest")
	logger.Debug().Str("path", path).Msg("Manifest written")
	return nil
}

// Decode parses manifest text in the given format.
func Decode(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

// Encode serializes m in the given format.
func Encode(m *Manifest, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return toml.Marshal(m)
	}
}
