package sync

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/deps/pkg/credentials"
	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/filesystem"
	"github.com/arthur-debert/deps/pkg/logging"
	"github.com/arthur-debert/deps/pkg/manifest"
	"github.com/arthur-debert/deps/pkg/vcs"
)

// Credentials is the credential provider handed to the backend. The planner
// asks for the passphrase once, before the first remote dependency.
type Credentials interface {
	credentials.Provider
	EnsurePassphrase() error
}

// Reporter receives user-facing progress lines. Messages may carry style
// markup.
type Reporter interface {
	Infof(format string, args ...interface{})
}

// Planner converges a vendor directory with a manifest.
type Planner struct {
	fs      filesystem.FS
	linker  filesystem.Linker
	backend vcs.Backend
	creds   Credentials
	report  Reporter
}

// NewPlanner returns a planner. creds may be nil when no dependency needs
// authentication.
func NewPlanner(fs filesystem.FS, linker filesystem.Linker, backend vcs.Backend, creds Credentials, report Reporter) *Planner {
	return &Planner{
		fs:      fs,
		linker:  linker,
		backend: backend,
		creds:   creds,
		report:  report,
	}
}

// Run converges every dependency of the session's manifest, in key order.
// The manifest is validated first; a failure at any later step aborts the
// run and leaves what was already done in place.
func (p *Planner) Run(ctx context.Context, s Session) error {
	logger := logging.GetLogger("sync")

	if err := Validate(s.Manifest); err != nil {
		return err
	}

	vendorDir, err := s.VendorDir()
	if err != nil {
		return err
	}
	logger.Info().
		Str("vendorDir", vendorDir).
		Bool("force", s.Force).
		Bool("prune", s.Prune).
		Int("dependencies", len(s.Manifest.Dependencies)).
		Msg("Starting sync")

	if err := p.prepareVendorDir(vendorDir, s.Force); err != nil {
		return err
	}

	if s.Prune {
		if _, err := p.Prune(vendorDir, Claimed(s.Manifest)); err != nil {
			return err
		}
	}

	if p.creds != nil && needsAuth(s.Manifest) {
		if err := p.creds.EnsurePassphrase(); err != nil {
			return err
		}
	}

	for _, name := range s.Manifest.Names() {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrBackend, "sync interrupted")
		}
		if err := p.converge(ctx, s, name, s.Manifest.Dependencies[name]); err != nil {
			return withDependency(err, name)
		}
	}

	logger.Info().Msg("Sync complete")
	return nil
}

func (p *Planner) prepareVendorDir(vendorDir string, force bool) error {
	exists, err := filesystem.Exists(p.fs, vendorDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileSystem, "failed to stat %s", vendorDir)
	}

	if force && exists {
		p.report.Infof("Deleting old lib dir: [path]%s[/path]", vendorDir)
		if err := p.fs.RemoveAll(vendorDir); err != nil {
			return errors.Wrapf(err, errors.ErrFileSystem, "failed to delete %s", vendorDir)
		}
		exists = false
	}
	if exists {
		return nil
	}
	return p.mkdir(vendorDir)
}

func (p *Planner) mkdir(dir string) error {
	p.report.Infof("Creating lib dir: [path]%s[/path]", dir)
	if err := p.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileSystem, "failed to create %s", dir)
	}
	return nil
}

func (p *Planner) converge(ctx context.Context, s Session, name string, dep manifest.Dependency) error {
	dest, err := s.Destination(name, dep)
	if err != nil {
		return err
	}

	parent := filepath.Dir(dest)
	parentExists, err := filesystem.Exists(p.fs, parent)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileSystem, "failed to stat %s", parent)
	}
	if !parentExists {
		if err := p.mkdir(parent); err != nil {
			return err
		}
	}

	exists, err := filesystem.Exists(p.fs, dest)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileSystem, "failed to stat %s", dest)
	}

	if dep.Path != "" {
		target, err := s.resolve(dep.Path)
		if err != nil {
			return err
		}
		return p.link(target, dest, exists)
	}

	url, err := ResolveURL(dep, s.Manifest.Project.GitServer)
	if err != nil {
		return err
	}
	selector, err := SelectorFor(dep)
	if err != nil {
		return err
	}

	// a link left by a former local source points into someone else's tree
	if exists && filesystem.IsSymlink(p.fs, dest) {
		p.report.Infof("Replacing link [path]%s[/path] with a checkout", dest)
		if err := p.fs.RemoveAll(dest); err != nil {
			return errors.Wrapf(err, errors.ErrFileSystem, "failed to remove link %s", dest)
		}
		exists = false
	}

	if !exists {
		return p.clone(ctx, url, dest, selector)
	}
	return p.update(ctx, url, dest, selector)
}

// link creates dest pointing at target. An existing link to another target
// is replaced; anything else already at dest is left alone.
func (p *Planner) link(target, dest string, exists bool) error {
	logger := logging.GetLogger("sync").With().Str("dest", dest).Str("target", target).Logger()

	if exists {
		if !filesystem.IsSymlink(p.fs, dest) {
			logger.Debug().Msg("Destination exists and is not a link, leaving it alone")
			return nil
		}
		current, err := p.fs.Readlink(dest)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileSystem, "failed to read link %s", dest)
		}
		if current == target {
			logger.Debug().Msg("Link up to date")
			return nil
		}
		p.report.Infof("Relinking [path]%s[/path] from [path]%s[/path] to [local]%s[/local]", dest, current, target)
		if err := p.fs.RemoveAll(dest); err != nil {
			return errors.Wrapf(err, errors.ErrFileSystem, "failed to remove stale link %s", dest)
		}
	} else {
		p.report.Infof("Linking path [local]%q[/local] into [path]%q[/path] as [name]%q[/name]",
			target, filepath.Dir(dest), filepath.Base(dest))
	}

	return p.linker.Link(target, dest)
}

func (p *Planner) clone(ctx context.Context, url, dest string, selector Selector) error {
	p.report.Infof("Cloning [ref]%s[/ref] from [remote]%q[/remote] into [path]%q[/path] as [name]%q[/name]",
		selector, url, filepath.Dir(dest), filepath.Base(dest))

	if err := p.fs.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileSystem, "failed to create %s", dest)
	}

	var branch string
	if selector.Kind == SelectBranch {
		branch = selector.Name
	}
	checkout, err := p.backend.Clone(ctx, url, dest, branch, p.creds)
	if err != nil {
		return err
	}

	if selector.Detached() {
		return EnsureRef(ctx, checkout, selector, p.creds)
	}
	return nil
}

func (p *Planner) update(ctx context.Context, url, dest string, selector Selector) error {
	p.report.Infof("Updating [path]%q[/path] to [ref]%s[/ref] from [remote]%q[/remote]", dest, selector, url)

	checkout, err := p.backend.Open(dest)
	if err != nil {
		return err
	}
	if err := checkout.EnsureOrigin(url); err != nil {
		return err
	}
	return EnsureRef(ctx, checkout, selector, p.creds)
}

// EnsureRef converges checkout onto selector: it fetches what the selector
// needs, hard resets the working tree to the resolved commit, removes
// untracked files, and attaches HEAD to the branch (branch and default
// selectors) or detaches it (tags and revisions). Running it again on a
// converged checkout changes nothing.
func EnsureRef(ctx context.Context, checkout vcs.Checkout, selector Selector, creds credentials.Provider) error {
	target, err := resolveTarget(ctx, checkout, selector, creds)
	if err != nil {
		return err
	}

	logger := logging.GetLogger("sync")
	logger.Debug().
		Str("selector", selector.String()).
		Str("hash", target.Hash).
		Str("branch", target.Branch).
		Msg("Resetting checkout")

	return checkout.ResetHard(target)
}

func resolveTarget(ctx context.Context, checkout vcs.Checkout, selector Selector, creds credentials.Provider) (vcs.Target, error) {
	switch selector.Kind {
	case SelectBranch:
		if err := checkout.Fetch(ctx, selector.Refspecs(), creds); err != nil {
			return vcs.Target{}, err
		}
		hash, err := checkout.ResolveBranch(selector.Name)
		return vcs.Target{Hash: hash, Branch: selector.Name}, err

	case SelectTag:
		if err := checkout.Fetch(ctx, selector.Refspecs(), creds); err != nil {
			return vcs.Target{}, err
		}
		hash, err := checkout.ResolveTag(selector.Name)
		return vcs.Target{Hash: hash}, err

	case SelectRevision:
		hash, err := checkout.ResolveCommit(selector.Name)
		if err == nil {
			return vcs.Target{Hash: hash}, nil
		}
		// unknown locally: one fetch of every branch before giving up
		if err := checkout.Fetch(ctx, allHeads(), creds); err != nil {
			return vcs.Target{}, err
		}
		hash, err = checkout.ResolveCommit(selector.Name)
		return vcs.Target{Hash: hash}, err

	default:
		if err := checkout.Fetch(ctx, selector.Refspecs(), creds); err != nil {
			return vcs.Target{}, err
		}
		branch, err := checkout.HeadBranch()
		if err != nil {
			return vcs.Target{}, err
		}
		if branch == "" {
			hash, err := checkout.ResolveCommit("HEAD")
			return vcs.Target{Hash: hash}, err
		}
		hash, err := checkout.ResolveBranch(branch)
		return vcs.Target{Hash: hash, Branch: branch}, err
	}
}

// needsAuth reports whether any dependency fetches over SSH, the only
// transport that is given credentials.
func needsAuth(m *manifest.Manifest) bool {
	for _, dep := range m.Dependencies {
		if !dep.IsRemote() {
			continue
		}
		url, err := ResolveURL(dep, m.Project.GitServer)
		if err == nil && vcs.NeedsAuth(url) {
			return true
		}
	}
	return false
}
