package filesystem

import (
	"io/fs"
	"os"
	"sort"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/spf13/afero"
)

// FS is the set of filesystem operations deps performs on vendor directories.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	RemoveAll(path string) error
	ReadDirNames(name string) ([]string, error)
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
}

// aferoFS gets Stat, MkdirAll, RemoveAll and WriteFile from afero.Afero and
// adds the link operations on top of afero's optional interfaces.
type aferoFS struct {
	afero.Afero
}

// NewAferoFS wraps any afero filesystem
func NewAferoFS(base afero.Fs) FS {
	return aferoFS{afero.Afero{Fs: base}}
}

func NewOS() FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewMemory returns an in-memory FS. Symlink and Readlink always fail on it.
func NewMemory() FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if l, ok := a.Fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return a.Fs.Stat(name)
}

// ReadFile refuses directories on every backend, memory included.
func (a aferoFS) ReadFile(name string) ([]byte, error) {
	if info, err := a.Fs.Stat(name); err != nil {
		return nil, err
	} else if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return a.Afero.ReadFile(name)
}

// ReadDirNames lists the entries of a directory, sorted
func (a aferoFS) ReadDirNames(name string) ([]string, error) {
	d, err := a.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	names, err := d.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (a aferoFS) Symlink(oldname, newname string) error {
	if l, ok := a.Fs.(afero.Linker); ok {
		return l.SymlinkIfPossible(oldname, newname)
	}
	return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: afero.ErrNoSymlink}
}

func (a aferoFS) Readlink(name string) (string, error) {
	if r, ok := a.Fs.(afero.LinkReader); ok {
		return r.ReadlinkIfPossible(name)
	}
	return "", &os.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}

// Exists reports whether name is present without following a final symlink,
// so a dangling link exists.
func Exists(fsys FS, name string) (bool, error) {
	_, err := fsys.Lstat(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// IsSymlink reports whether name is a symbolic link
func IsSymlink(fsys FS, name string) bool {
	info, err := fsys.Lstat(name)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
