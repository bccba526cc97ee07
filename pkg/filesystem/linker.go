package filesystem

import (
	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/paths"
)

// Linker creates a symbolic directory link at link pointing to target.
type Linker interface {
	Link(target, link string) error
}

type fsLinker struct {
	fs FS
}

// NewLinker returns the Linker for the running platform, creating links
// through fs. os.Symlink, which the OS filesystem delegates to, creates
// directory links on Windows when the target is a directory.
func NewLinker(fs FS) Linker {
	return &fsLinker{fs: fs}
}

func (l *fsLinker) Link(target, link string) error {
	abs, err := paths.Absolute(target)
	if err != nil {
		return err
	}
	if err := l.fs.Symlink(abs, link); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %q to %q", link, abs).
			WithDetail("target", abs).
			WithDetail("link", link)
	}
	return nil
}
