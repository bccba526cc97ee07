package sync

import (
	"fmt"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/manifest"
	"github.com/arthur-debert/deps/pkg/vcs"
)

// SelectorKind identifies how a remote dependency is pinned
type SelectorKind int

const (
	// SelectDefault follows the remote's default branch
	SelectDefault SelectorKind = iota
	// SelectBranch follows a named branch
	SelectBranch
	// SelectTag pins a tag
	SelectTag
	// SelectRevision pins a commit id
	SelectRevision
)

func (k SelectorKind) String() string {
	switch k {
	case SelectDefault:
		return "default"
	case SelectBranch:
		return "branch"
	case SelectTag:
		return "tag"
	case SelectRevision:
		return "revision"
	default:
		return "unknown"
	}
}

// Selector is the ref a remote checkout converges to. Name is empty for
// SelectDefault.
type Selector struct {
	Kind SelectorKind
	Name string
}

// SelectorFor returns the selector declared by dep. Declaring more than one
// of branch, tag and rev is a resolution error.
func SelectorFor(dep manifest.Dependency) (Selector, error) {
	var selectors []Selector
	if dep.Branch != "" {
		selectors = append(selectors, Selector{Kind: SelectBranch, Name: dep.Branch})
	}
	if dep.Tag != "" {
		selectors = append(selectors, Selector{Kind: SelectTag, Name: dep.Tag})
	}
	if dep.Rev != "" {
		selectors = append(selectors, Selector{Kind: SelectRevision, Name: dep.Rev})
	}

	switch len(selectors) {
	case 0:
		return Selector{Kind: SelectDefault}, nil
	case 1:
		return selectors[0], nil
	default:
		return Selector{}, errors.Newf(errors.ErrResolution,
			"ambiguous ref: only one of branch, tag and rev may be set, got %s and %s",
			selectors[0], selectors[1])
	}
}

// Detached reports whether HEAD is detached once the checkout converged.
func (s Selector) Detached() bool {
	return s.Kind == SelectTag || s.Kind == SelectRevision
}

// Refspecs returns what has to be fetched to resolve the selector. A
// revision needs no fetch as long as the commit is already known.
func (s Selector) Refspecs() []string {
	switch s.Kind {
	case SelectBranch:
		return []string{fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", s.Name, vcs.RemoteName, s.Name)}
	case SelectTag:
		return []string{fmt.Sprintf("+refs/tags/%s:refs/tags/%s", s.Name, s.Name)}
	case SelectDefault:
		return allHeads()
	default:
		return nil
	}
}

func (s Selector) String() string {
	if s.Kind == SelectDefault {
		return "default branch"
	}
	return fmt.Sprintf("%s %q", s.Kind, s.Name)
}

func allHeads() []string {
	return []string{fmt.Sprintf("+refs/heads/*:refs/remotes/%s/*", vcs.RemoteName)}
}
