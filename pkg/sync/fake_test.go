package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/deps/pkg/credentials"
	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/vcs"
)

// fakeBackend records every backend call as a line of text. Clones write a
// README into the destination so later runs find it present.
type fakeBackend struct {
	calls     []string
	cloneErr  error
	known     map[string]bool
	fetchable map[string]bool
	head      string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		known:     map[string]bool{},
		fetchable: map[string]bool{},
		head:      "main",
	}
}

func (b *fakeBackend) record(format string, args ...interface{}) {
	b.calls = append(b.calls, fmt.Sprintf(format, args...))
}

func (b *fakeBackend) callsWith(prefix string) []string {
	var matched []string
	for _, call := range b.calls {
		if strings.HasPrefix(call, prefix) {
			matched = append(matched, call)
		}
	}
	return matched
}

func (b *fakeBackend) Clone(_ context.Context, url, dest, branch string, _ credentials.Provider) (vcs.Checkout, error) {
	b.record("clone %s %s %s", url, dest, branch)
	if b.cloneErr != nil {
		return nil, b.cloneErr
	}
	if err := os.WriteFile(filepath.Join(dest, "README"), []byte(url), 0644); err != nil {
		return nil, err
	}
	return &fakeCheckout{backend: b, dest: dest}, nil
}

func (b *fakeBackend) Open(dest string) (vcs.Checkout, error) {
	b.record("open %s", dest)
	return &fakeCheckout{backend: b, dest: dest}, nil
}

type fakeCheckout struct {
	backend *fakeBackend
	dest    string
}

func (c *fakeCheckout) EnsureOrigin(url string) error {
	c.backend.record("origin %s", url)
	return nil
}

func (c *fakeCheckout) Fetch(_ context.Context, refspecs []string, _ credentials.Provider) error {
	c.backend.record("fetch %s", strings.Join(refspecs, " "))
	for id := range c.backend.fetchable {
		c.backend.known[id] = true
	}
	return nil
}

func (c *fakeCheckout) ResolveBranch(name string) (string, error) {
	c.backend.record("resolve-branch %s", name)
	return "branch-" + name, nil
}

func (c *fakeCheckout) ResolveTag(name string) (string, error) {
	c.backend.record("resolve-tag %s", name)
	return "tag-" + name, nil
}

func (c *fakeCheckout) ResolveCommit(id string) (string, error) {
	c.backend.record("resolve-commit %s", id)
	if id == "HEAD" || c.backend.known[id] {
		return "commit-" + id, nil
	}
	return "", errors.Newf(errors.ErrBackend, "unknown revision %s", id)
}

func (c *fakeCheckout) HeadBranch() (string, error) {
	return c.backend.head, nil
}

func (c *fakeCheckout) ResetHard(target vcs.Target) error {
	c.backend.record("reset %s %s", target.Hash, target.Branch)
	return nil
}

type countingCredentials struct {
	ensured int
	err     error
}

func (c *countingCredentials) EnsurePassphrase() error {
	c.ensured++
	return c.err
}

func (c *countingCredentials) Credentials(user string) (*credentials.Credential, error) {
	return &credentials.Credential{Username: user}, nil
}
