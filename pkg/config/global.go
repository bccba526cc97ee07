package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/filesystem"
	"github.com/arthur-debert/deps/pkg/logging"
	"github.com/arthur-debert/deps/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes environment variables that override loaded values,
// e.g. DEPS_GENERAL_DEFAULT_LIB_DIR or DEPS_GENERAL_PRUNE.
const EnvPrefix = "DEPS_"

// General holds the [general] table
type General struct {
	DefaultLibDir string `koanf:"default-lib-dir" toml:"default-lib-dir"`
	Prune         bool   `koanf:"prune" toml:"prune"`
}

// SSH holds the optional [ssh] table. Key paths may reference environment
// variables and the home directory; they are expanded when used.
type SSH struct {
	Private   string `koanf:"private" toml:"private"`
	Public    string `koanf:"public" toml:"public"`
	Protected bool   `koanf:"protected" toml:"protected"`
}

// Global is the per-user configuration. It is read once per run and never
// modified afterwards.
type Global struct {
	General General `koanf:"general" toml:"general"`
	SSH     *SSH    `koanf:"ssh" toml:"ssh,omitempty"`
}

// Defaults returns the configuration written on first use.
func Defaults() *Global {
	home := "$" + paths.HomeEnvVar()
	return &Global{
		General: General{
			DefaultLibDir: paths.DefaultVendorDir,
		},
		SSH: &SSH{
			Private:   home + "/.ssh/id_rsa",
			Public:    home + "/.ssh/id_rsa.pub",
			Protected: false,
		},
	}
}

// Store loads and persists the global configuration file.
type Store struct {
	fs   filesystem.FS
	path string
}

// NewStore returns a store for the configuration file at path.
func NewStore(fs filesystem.FS, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the configuration file location.
func (s *Store) Path() string {
	return s.path
}

// LoadOrInit loads the configuration, first writing Defaults to the file if
// it does not exist yet. created reports whether the file was written.
func (s *Store) LoadOrInit() (cfg *Global, created bool, err error) {
	exists, err := filesystem.Exists(s.fs, s.path)
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrConfig, "failed to stat %s", s.path)
	}
	if !exists {
		if err := s.Save(Defaults()); err != nil {
			return nil, false, err
		}
		created = true
	}

	cfg, err = s.Load()
	return cfg, created, err
}

// Save serializes cfg to the configuration file.
func (s *Store) Save(cfg *Global) error {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfig, "failed to serialize global configuration")
	}
	if err := s.fs.WriteFile(s.path, data, 0600); err != nil {
		return errors.Wrapf(err, errors.ErrConfig, "failed to write %s", s.path)
	}
	logger := logging.GetLogger("config")
	logger.Info().Str("path", s.path).Msg("Global configuration initialized")
	return nil
}

// Load reads the configuration: embedded defaults, then the file, then
// DEPS_ environment variables.
func (s *Store) Load() (*Global, error) {
	logger := logging.GetLogger("config").With().Str("path", s.path).Logger()
	k := koanf.New(".")

	if err := k.Load(defaultsProvider{}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to load defaults")
	}
	if err := k.Load(fsProvider{fs: s.fs, path: s.path}, toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfig, "failed to load %s", s.path)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to load env vars")
	}

	var cfg Global
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to unmarshal global configuration")
	}

	logger.Debug().
		Str("defaultLibDir", cfg.General.DefaultLibDir).
		Bool("prune", cfg.General.Prune).
		Bool("ssh", cfg.SSH != nil).
		Msg("Global configuration loaded")

	return &cfg, nil
}

// LoadFile is a convenience for loading a configuration from a path on the
// OS filesystem without initializing it.
func LoadFile(path string) (*Global, error) {
	return NewStore(filesystem.NewOS(), path).Load()
}

// envKey maps DEPS_GENERAL_DEFAULT_LIB_DIR to general.default-lib-dir: the
// first underscore separates the table, the rest become dashes.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	table, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return fmt.Sprintf("%s.%s", table, strings.ReplaceAll(rest, "_", "-"))
}
