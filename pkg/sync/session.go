package sync

import (
	"path/filepath"

	"github.com/arthur-debert/deps/pkg/config"
	"github.com/arthur-debert/deps/pkg/manifest"
	"github.com/arthur-debert/deps/pkg/paths"
)

// Session is everything one run reads: the global configuration, the
// manifest and the run's flags. It is built once at startup and passed by
// value; nothing in this package modifies it.
type Session struct {
	Global   *config.Global
	Manifest *manifest.Manifest

	// Root is the directory relative paths in the manifest are resolved
	// against, normally the directory holding the manifest.
	Root string

	// Force empties the vendor directory before converging.
	Force bool

	// Prune removes vendor entries no dependency claims.
	Prune bool
}

// VendorDir returns the absolute vendor directory: the manifest's lib-dir,
// else the global default, else VENDOR.
func (s Session) VendorDir() (string, error) {
	dir := s.Manifest.Project.LibDir
	if dir == "" && s.Global != nil {
		dir = s.Global.General.DefaultLibDir
	}
	if dir == "" {
		dir = paths.DefaultVendorDir
	}
	return s.resolve(dir)
}

// Destination returns where the dependency name is materialized:
// (into, else the vendor directory) / (as, else name).
func (s Session) Destination(name string, dep manifest.Dependency) (string, error) {
	dir, err := s.parentOf(dep)
	if err != nil {
		return "", err
	}
	if dep.As != "" {
		name = dep.As
	}
	return filepath.Join(dir, name), nil
}

func (s Session) parentOf(dep manifest.Dependency) (string, error) {
	if dep.Into != "" {
		return s.resolve(dep.Into)
	}
	return s.VendorDir()
}

// resolve makes path absolute against Root.
func (s Session) resolve(path string) (string, error) {
	if !filepath.IsAbs(path) && s.Root != "" {
		path = filepath.Join(s.Root, path)
	}
	return paths.Absolute(path)
}
