package sync

import (
	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/manifest"
)

// Validate checks every dependency of m before anything is touched on disk.
// The first invalid dependency, in key order, is reported.
func Validate(m *manifest.Manifest) error {
	for _, name := range m.Names() {
		if err := validateDependency(m.Dependencies[name], m.Project.GitServer); err != nil {
			return withDependency(err, name)
		}
	}
	return nil
}

func validateDependency(dep manifest.Dependency, gitServer string) error {
	if dep.Path != "" {
		if dep.IsRemote() {
			return errors.New(errors.ErrResolution, "ambiguous source: path is set together with a git source")
		}
		if dep.Branch != "" || dep.Tag != "" || dep.Rev != "" {
			return errors.New(errors.ErrResolution, "branch, tag and rev only apply to git sources")
		}
		return nil
	}

	if _, err := ResolveURL(dep, gitServer); err != nil {
		return err
	}
	_, err := SelectorFor(dep)
	return err
}

// withDependency records the dependency an error happened on. Errors that
// do not come from deps packages are filesystem failures.
func withDependency(err error, name string) error {
	return errors.Annotate(err, errors.ErrFileSystem, "dependency", name)
}
