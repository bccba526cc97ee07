package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateFile writes content to dir/name, creating parents, and returns the
// path.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// CreateDir makes parent/name and returns it
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()
	path := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(path, 0755))
	return path
}

// CreateSymlink links link to target, creating link's parent
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.Symlink(target, link))
}

func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// AssertSymlink fails unless link is a symlink whose target is exactly want
func AssertSymlink(t *testing.T, link, want string) {
	t.Helper()
	info, err := os.Lstat(link)
	require.NoError(t, err, "no symlink at %s", link)
	require.NotZero(t, info.Mode()&os.ModeSymlink, "%s is not a symlink", link)

	got, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, want, got, "target of %s", link)
}

// AssertNoFile fails if anything exists at path, a dangling link included
func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "%s should not exist", path)
}

// DirNames returns the sorted entry names of dir
func DirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlink semantics differ on Windows")
	}
}
