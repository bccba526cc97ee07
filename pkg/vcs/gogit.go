package vcs

import (
	"context"
	"fmt"

	"github.com/arthur-debert/deps/pkg/credentials"
	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/logging"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/protocol/packp/sideband"
)

// Option configures a GoGit backend.
type Option func(g *GoGit)

// Progress returns an option that sets the progress output.
func Progress(progress sideband.Progress) Option {
	return func(g *GoGit) {
		g.progress = progress
	}
}

// GoGit is the go-git backend.
type GoGit struct {
	progress sideband.Progress
}

// NewGoGit returns a go-git backend.
func NewGoGit(options ...Option) *GoGit {
	g := &GoGit{}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// Clone implements Backend.
func (g *GoGit) Clone(ctx context.Context, url, dest, branch string, creds credentials.Provider) (Checkout, error) {
	auth, err := authFor(url, creds)
	if err != nil {
		return nil, err
	}

	opts := &git.CloneOptions{
		URL:        url,
		RemoteName: RemoteName,
		Auth:       auth,
		Progress:   g.progress,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	logger := logging.GetLogger("vcs")
	logger.Debug().
		Str("url", url).
		Str("dest", dest).
		Str("branch", branch).
		Msg("Cloning repository")

	repo, err := git.PlainCloneContext(ctx, dest, false, opts)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBackend, "unable to clone %s", url).
			WithDetail("dest", dest)
	}
	return &goGitCheckout{repo: repo, path: dest, progress: g.progress}, nil
}

// Open implements Backend.
func (g *GoGit) Open(dest string) (Checkout, error) {
	repo, err := git.PlainOpen(dest)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.Wrapf(err, errors.ErrBackend, "%s is not a git checkout", dest)
		}
		return nil, errors.Wrapf(err, errors.ErrBackend, "unable to open repository located at %q", dest)
	}
	return &goGitCheckout{repo: repo, path: dest, progress: g.progress}, nil
}

type goGitCheckout struct {
	repo     *git.Repository
	path     string
	progress sideband.Progress
}

func (c *goGitCheckout) remoteURL() (string, error) {
	remote, err := c.repo.Remote(RemoteName)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackend, "unable to find remote %s in %s", RemoteName, c.path)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", errors.Newf(errors.ErrBackend, "remote %s in %s has no URL", RemoteName, c.path)
	}
	return urls[0], nil
}

func (c *goGitCheckout) EnsureOrigin(url string) error {
	cfg := config.RemoteConfig{
		Name:  RemoteName,
		URLs:  []string{url},
		Fetch: []config.RefSpec{config.RefSpec(fmt.Sprintf(config.DefaultFetchRefSpec, RemoteName))},
	}

	remote, err := c.repo.Remote(RemoteName)
	switch {
	case errors.Is(err, git.ErrRemoteNotFound):
		_, err = c.repo.CreateRemote(&cfg)
	case err == nil:
		urls := remote.Config().URLs
		if len(urls) == 1 && urls[0] == url {
			return nil
		}
		logger := logging.GetLogger("vcs")
		logger.Info().Str("path", c.path).Str("url", url).Msg("Updating origin")
		if err = c.repo.DeleteRemote(RemoteName); err == nil {
			_, err = c.repo.CreateRemote(&cfg)
		}
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrBackend, "unable to update origin of %s", c.path)
	}
	return nil
}

func (c *goGitCheckout) Fetch(ctx context.Context, refspecs []string, creds credentials.Provider) error {
	url, err := c.remoteURL()
	if err != nil {
		return err
	}
	auth, err := authFor(url, creds)
	if err != nil {
		return err
	}

	specs := make([]config.RefSpec, 0, len(refspecs))
	for _, spec := range refspecs {
		rs := config.RefSpec(spec)
		if err := rs.Validate(); err != nil {
			return errors.Wrapf(err, errors.ErrBackend, "invalid refspec %q", spec)
		}
		specs = append(specs, rs)
	}

	logger := logging.GetLogger("vcs")
	logger.Debug().
		Str("path", c.path).
		Strs("refspecs", refspecs).
		Msg("Fetching")

	err = c.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: RemoteName,
		RefSpecs:   specs,
		Auth:       auth,
		Progress:   c.progress,
		Force:      true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return errors.Wrapf(err, errors.ErrBackend, "unable to fetch %v from %s", refspecs, url)
	}
	return nil
}

func (c *goGitCheckout) ResolveBranch(name string) (string, error) {
	ref, err := c.repo.Reference(plumbing.NewRemoteReferenceName(RemoteName, name), true)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackend, "unable to resolve branch %s", name)
	}
	return ref.Hash().String(), nil
}

func (c *goGitCheckout) ResolveTag(name string) (string, error) {
	ref, err := c.repo.Tag(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackend, "unable to resolve tag %s", name)
	}

	tag, err := c.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		commit, err := tag.Commit()
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrBackend, "tag %s does not point at a commit", name)
		}
		return commit.Hash.String(), nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		// lightweight tag
		commit, err := c.repo.CommitObject(ref.Hash())
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrBackend, "tag %s does not point at a commit", name)
		}
		return commit.Hash.String(), nil
	default:
		return "", errors.Wrapf(err, errors.ErrBackend, "unable to read tag %s", name)
	}
}

func (c *goGitCheckout) ResolveCommit(id string) (string, error) {
	hash, err := c.repo.ResolveRevision(plumbing.Revision(id))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackend, "unable to resolve revision %s", id)
	}
	commit, err := c.repo.CommitObject(*hash)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackend, "revision %s is not a commit", id)
	}
	return commit.Hash.String(), nil
}

func (c *goGitCheckout) HeadBranch() (string, error) {
	head, err := c.repo.Head()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackend, "unable to determine repository HEAD reference")
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

func (c *goGitCheckout) ResetHard(target Target) error {
	hash := plumbing.NewHash(target.Hash)

	var head *plumbing.Reference
	if target.Branch != "" {
		branch := plumbing.NewBranchReferenceName(target.Branch)
		if err := c.repo.Storer.SetReference(plumbing.NewHashReference(branch, hash)); err != nil {
			return errors.Wrapf(err, errors.ErrBackend, "unable to move branch %s", target.Branch)
		}
		head = plumbing.NewSymbolicReference(plumbing.HEAD, branch)
	} else {
		head = plumbing.NewHashReference(plumbing.HEAD, hash)
	}
	if err := c.repo.Storer.SetReference(head); err != nil {
		return errors.Wrapf(err, errors.ErrBackend, "unable to update HEAD of %s", c.path)
	}

	worktree, err := c.repo.Worktree()
	if err != nil {
		return errors.Wrapf(err, errors.ErrBackend, "unable to open worktree")
	}
	if err := worktree.Reset(&git.ResetOptions{Commit: hash, Mode: git.HardReset}); err != nil {
		return errors.Wrapf(err, errors.ErrBackend, "unable to reset %s to %s", c.path, target.Hash)
	}
	if err := worktree.Clean(&git.CleanOptions{Dir: true}); err != nil {
		return errors.Wrapf(err, errors.ErrBackend, "unable to remove untracked files from %s", c.path)
	}
	return nil
}
