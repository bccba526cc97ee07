// Package manifest reads and writes the project manifest, the file that
// declares a project's vendored dependencies.
package manifest

import (
	"sort"
)

// Project holds the manifest's project table
type Project struct {
	Name      string `toml:"name" yaml:"name"`
	LibDir    string `toml:"lib-dir,omitempty" yaml:"lib-dir,omitempty"`
	GitServer string `toml:"git-server,omitempty" yaml:"git-server,omitempty"`

	// package metadata
	Authors     []string               `toml:"authors,omitempty" yaml:"authors,omitempty"`
	Description string                 `toml:"description,omitempty" yaml:"description,omitempty"`
	Homepage    string                 `toml:"homepage,omitempty" yaml:"homepage,omitempty"`
	Repository  string                 `toml:"repository,omitempty" yaml:"repository,omitempty"`
	Metadata    map[string]interface{} `toml:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Dependency is a single entry of the dependencies table. Exactly one
// source (path, git or repo) and at most one of branch, tag and rev are
// expected; the sync planner rejects anything else.
type Dependency struct {
	Path   string `toml:"path,omitempty" yaml:"path,omitempty"`
	Repo   string `toml:"repo,omitempty" yaml:"repo,omitempty"`
	Git    string `toml:"git,omitempty" yaml:"git,omitempty"`
	Branch string `toml:"branch,omitempty" yaml:"branch,omitempty"`
	Tag    string `toml:"tag,omitempty" yaml:"tag,omitempty"`
	Rev    string `toml:"rev,omitempty" yaml:"rev,omitempty"`
	Into   string `toml:"into,omitempty" yaml:"into,omitempty"`
	As     string `toml:"as,omitempty" yaml:"as,omitempty"`
}

// IsRemote reports whether the dependency names a git source.
func (d Dependency) IsRemote() bool {
	return d.Git != "" || d.Repo != ""
}

// Manifest is the parsed manifest file
type Manifest struct {
	Project      Project               `toml:"project" yaml:"project"`
	Dependencies map[string]Dependency `toml:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Names returns the dependency names in key order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Skeleton returns the manifest written by init: the project named after
// its directory, authored by the current user, with no dependencies.
func Skeleton(projectName, author string) *Manifest {
	m := &Manifest{
		Project: Project{
			Name: projectName,
		},
	}
	if author != "" {
		m.Project.Authors = []string{author}
	}
	return m
}
