package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultBranch is the branch a GitFixture starts on
const DefaultBranch = "main"

var signature = object.Signature{
	Name:  "deps test",
	Email: "deps@example.com",
}

// GitFixture is a git repository with a working tree that tests use as an
// upstream remote.
type GitFixture struct {
	t    *testing.T
	Dir  string
	Repo *git.Repository
}

// RequireGitTransport skips the test when local clones cannot be served.
// go-git clones from a path through the git-upload-pack binary.
func RequireGitTransport(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git-upload-pack"); err != nil {
		t.Skip("git-upload-pack not found in PATH")
	}
}

// NewGitFixture initializes an empty repository on DefaultBranch.
func NewGitFixture(t *testing.T) *GitFixture {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "upstream")
	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(DefaultBranch),
		},
	})
	if err != nil {
		t.Fatalf("Failed to init repository at %s: %v", dir, err)
	}
	return &GitFixture{t: t, Dir: dir, Repo: repo}
}

// URL returns the location to clone the fixture from.
func (f *GitFixture) URL() string {
	return f.Dir
}

// Commit writes files relative to the repository root, stages them and
// commits them on the current branch. It returns the commit id.
func (f *GitFixture) Commit(files map[string]string, message string) string {
	f.t.Helper()

	worktree, err := f.Repo.Worktree()
	if err != nil {
		f.t.Fatalf("Failed to open worktree: %v", err)
	}

	for name, content := range files {
		path := filepath.Join(f.Dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			f.t.Fatalf("Failed to create parent of %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			f.t.Fatalf("Failed to write %s: %v", path, err)
		}
		if _, err := worktree.Add(name); err != nil {
			f.t.Fatalf("Failed to stage %s: %v", name, err)
		}
	}

	sig := signature
	sig.When = time.Now()
	hash, err := worktree.Commit(message, &git.CommitOptions{Author: &sig})
	if err != nil {
		f.t.Fatalf("Failed to commit %q: %v", message, err)
	}
	return hash.String()
}

// Head returns the commit HEAD points at.
func (f *GitFixture) Head() string {
	f.t.Helper()

	head, err := f.Repo.Head()
	if err != nil {
		f.t.Fatalf("Failed to read HEAD: %v", err)
	}
	return head.Hash().String()
}

// Branch creates name at HEAD and checks it out.
func (f *GitFixture) Branch(name string) {
	f.t.Helper()

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), plumbing.NewHash(f.Head()))
	if err := f.Repo.Storer.SetReference(ref); err != nil {
		f.t.Fatalf("Failed to create branch %s: %v", name, err)
	}
	f.Checkout(name)
}

// Checkout switches the working tree to an existing branch.
func (f *GitFixture) Checkout(name string) {
	f.t.Helper()

	worktree, err := f.Repo.Worktree()
	if err != nil {
		f.t.Fatalf("Failed to open worktree: %v", err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(name)}); err != nil {
		f.t.Fatalf("Failed to checkout %s: %v", name, err)
	}
}

// Tag tags HEAD and returns the tagged commit. annotated creates a tag
// object; otherwise a lightweight tag is created.
func (f *GitFixture) Tag(name string, annotated bool) string {
	f.t.Helper()

	head := plumbing.NewHash(f.Head())
	var opts *git.CreateTagOptions
	if annotated {
		sig := signature
		sig.When = time.Now()
		opts = &git.CreateTagOptions{Tagger: &sig, Message: "release " + name}
	}
	if _, err := f.Repo.CreateTag(name, head, opts); err != nil {
		f.t.Fatalf("Failed to create tag %s: %v", name, err)
	}
	return head.String()
}

// CheckoutHead returns the commit HEAD points at in the checkout at dir and
// the branch it is on, "" when detached.
func CheckoutHead(t *testing.T, dir string) (hash, branch string) {
	t.Helper()

	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("Failed to open checkout %s: %v", dir, err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Failed to read HEAD of %s: %v", dir, err)
	}
	if head.Name().IsBranch() {
		branch = head.Name().Short()
	}
	return head.Hash().String(), branch
}

// OriginURL returns the URL of the origin remote of the checkout at dir.
func OriginURL(t *testing.T, dir string) string {
	t.Helper()

	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("Failed to open checkout %s: %v", dir, err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		t.Fatalf("Failed to read origin of %s: %v", dir, err)
	}
	return remote.Config().URLs[0]
}
