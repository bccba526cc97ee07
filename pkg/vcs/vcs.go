// Package vcs is the version control backend used by the sync planner.
//
// The planner only depends on the Backend and Checkout interfaces: clone,
// open, fetch, resolve and hard reset. GoGit implements them with go-git.
// Credentials are never looked up here; every call that may reach a remote
// receives the credentials.Provider to ask.
package vcs

import (
	"context"

	"github.com/arthur-debert/deps/pkg/credentials"
)

// RemoteName is the remote every clone is created with
const RemoteName = "origin"

// Target is the object a checkout is reset to. When Branch is set, the local
// branch is moved to Hash and HEAD points at it; otherwise HEAD is detached
// at Hash.
type Target struct {
	Hash   string
	Branch string
}

// Backend creates or opens checkouts.
type Backend interface {
	// Clone clones url into dest. A non-empty branch is checked out instead
	// of the remote's default branch.
	Clone(ctx context.Context, url, dest, branch string, creds credentials.Provider) (Checkout, error)

	// Open opens the existing checkout at dest.
	Open(dest string) (Checkout, error)
}

// Checkout is a working copy managed by deps.
type Checkout interface {
	// EnsureOrigin points the origin remote at url.
	EnsureOrigin(url string) error

	// Fetch fetches refspecs from origin. Already being up to date is not
	// an error.
	Fetch(ctx context.Context, refspecs []string, creds credentials.Provider) error

	// ResolveBranch returns the commit of origin's branch as last fetched.
	ResolveBranch(name string) (string, error)

	// ResolveTag returns the commit a tag peels to.
	ResolveTag(name string) (string, error)

	// ResolveCommit returns the full id of the commit named by id.
	ResolveCommit(id string) (string, error)

	// HeadBranch returns the checked out branch, or "" when HEAD is detached.
	HeadBranch() (string, error)

	// ResetHard moves HEAD to target and makes the working tree match it,
	// discarding local modifications and untracked files.
	ResetHard(target Target) error
}
