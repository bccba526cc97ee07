package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/deps/pkg/errors"
)

// Environment variable names
const (
	// EnvHome is the home directory variable on unix-like systems
	EnvHome = "HOME"

	// EnvUserProfile is the home directory variable on Windows
	EnvUserProfile = "USERPROFILE"
)

// Default files and directories
const (
	// GlobalConfigFile is the per-user configuration file name, stored in the home directory
	GlobalConfigFile = ".deprc"

	// ManifestFile is the default manifest name in the project directory
	ManifestFile = "deps.toml"

	// DefaultVendorDir is the vendor directory used when neither the manifest
	// nor the global configuration names one
	DefaultVendorDir = "VENDOR"
)

// HomeEnvVar returns the name of the environment variable that holds the
// home directory on the running platform.
func HomeEnvVar() string {
	if runtime.GOOS == "windows" {
		return EnvUserProfile
	}
	return EnvHome
}

// GetHomeDirectory returns the user's home directory.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(HomeEnvVar()); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrConfig, "failed to get home directory")
	}
	return homeDir, nil
}

// GlobalConfigPath returns the location of the per-user configuration file.
func GlobalConfigPath() (string, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalConfigFile), nil
}

// Absolute returns the absolute, cleaned form of path, resolved against the
// current working directory when relative.
func Absolute(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileSystem, "failed to get absolute path for %q", path)
	}
	return abs, nil
}

// ExpandPath substitutes environment references in a path expression.
//
// The expression is split on "/" (or on "\" when it contains no "/"). A
// segment of the form $VAR or %VAR% is replaced by the variable's value and
// a segment that is exactly "~" by the home directory. Other segments are
// kept literally. Referencing an unset variable is an ErrEnvironment error.
func ExpandPath(expr string) (string, error) {
	if expr == "" {
		return expr, nil
	}

	sep := "/"
	if !strings.Contains(expr, "/") && strings.Contains(expr, `\`) {
		sep = `\`
	}

	parts := strings.Split(expr, sep)
	for i, part := range parts {
		switch {
		case strings.HasPrefix(part, "$") && len(part) > 1:
			value, err := lookupEnv(part[1:])
			if err != nil {
				return "", err
			}
			parts[i] = value
		case len(part) > 2 && strings.HasPrefix(part, "%") && strings.HasSuffix(part, "%"):
			value, err := lookupEnv(part[1 : len(part)-1])
			if err != nil {
				return "", err
			}
			parts[i] = value
		case part == "~":
			home, err := GetHomeDirectory()
			if err != nil {
				return "", errors.Wrapf(err, errors.ErrEnvironment, "cannot expand ~ in %q", expr)
			}
			parts[i] = home
		}
	}

	return filepath.Clean(strings.Join(parts, sep)), nil
}

func lookupEnv(name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", errors.Newf(errors.ErrEnvironment, "environment variable %q is not set", name).
			WithDetail("variable", name)
	}
	return value, nil
}
