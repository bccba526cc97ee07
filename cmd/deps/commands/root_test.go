package commands

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupHome points the home directory and log state at temporary
// directories and returns the home.
func setupHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	for _, key := range []string{"DEPS_GENERAL_PRUNE", "DEPS_GENERAL_DEFAULT_LIB_DIR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--format", "text"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGlobalInitializesConfig(t *testing.T) {
	home := setupHome(t)
	deprc := filepath.Join(home, ".deprc")

	out, err := execute(t, "global")
	require.NoError(t, err)
	assert.Contains(t, out, "Initializing global configuration.")
	assert.Contains(t, out, `Global configuration path: "`+deprc+`"`)
	assert.FileExists(t, deprc)

	out, err = execute(t, "global")
	require.NoError(t, err)
	assert.NotContains(t, out, "Initializing")
}

func TestCommandsAreCaseInsensitive(t *testing.T) {
	setupHome(t)

	for _, name := range []string{"GLOBAL", " Global "} {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, name)
			require.NoError(t, err)
			assert.Contains(t, out, "Global configuration path")
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "frobnicate")
	require.Error(t, err)
	assert.Equal(t, `[UNKNOWN_COMMAND] Unknown command: "frobnicate"`, err.Error())
	assert.Equal(t, ExitUnknownCommand, ExitCode(err))

	_, err = execute(t)
	require.Error(t, err)
	assert.Equal(t, ExitUnknownCommand, ExitCode(err))
}

func TestInitCreatesManifest(t *testing.T) {
	setupHome(t)
	project := testutil.CreateDir(t, t.TempDir(), "myproject")
	path := filepath.Join(project, "deps.toml")

	out, err := execute(t, "init", "--manifest", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created manifest "+path)

	content := testutil.ReadFile(t, path)
	assert.Contains(t, content, "[project]")
	assert.Contains(t, content, "name = 'myproject'")
}

func TestInitRefusesExistingManifest(t *testing.T) {
	setupHome(t)
	path := testutil.CreateFile(t, t.TempDir(), "deps.toml", "original")

	_, err := execute(t, "init", "--manifest", path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestFound))
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Equal(t, "original", testutil.ReadFile(t, path))
}

func TestUpdateWithoutManifest(t *testing.T) {
	setupHome(t)
	project := t.TempDir()

	_, err := execute(t, "update", "--manifest", filepath.Join(project, "deps.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifest))
	assert.NotEqual(t, ExitOK, ExitCode(err))
	testutil.AssertNoFile(t, filepath.Join(project, "VENDOR"))
}

func TestUpdateLinksLocalDependency(t *testing.T) {
	testutil.SkipOnWindows(t)
	setupHome(t)

	project := t.TempDir()
	shared := testutil.CreateDir(t, project, "shared")
	testutil.CreateDir(t, project, "VENDOR/orphan")
	path := testutil.CreateFile(t, project, "deps.toml", `
[project]
name = "app"

[dependencies]
shared = { path = "shared", as = "common" }
`)

	out, err := execute(t, "update", "--manifest", path, "--prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Dependencies up to date")

	testutil.AssertSymlink(t, filepath.Join(project, "VENDOR", "common"), shared)
	testutil.AssertNoFile(t, filepath.Join(project, "VENDOR", "orphan"))
}

func TestUpdateRejectsConflictingPruneFlags(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "update", "--prune", "--no-prune")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestUpdateForceWithYAMLManifest(t *testing.T) {
	testutil.SkipOnWindows(t)
	setupHome(t)

	project := t.TempDir()
	shared := testutil.CreateDir(t, project, "shared")
	testutil.CreateFile(t, project, "libs/stale.txt", "old")
	path := testutil.CreateFile(t, project, "deps.yaml", `
project:
  name: app
  lib-dir: libs
dependencies:
  shared:
    path: shared
`)

	_, err := execute(t, "update", "-f", "--manifest", path)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"shared"}, testutil.DirNames(t, filepath.Join(project, "libs")))
	testutil.AssertSymlink(t, filepath.Join(project, "libs", "shared"), shared)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"manifest exists", errors.New(errors.ErrManifestFound, "Already initialized"), ExitFailure},
		{"unknown command", errors.New(errors.ErrUnknownCommand, "Unknown command"), ExitUnknownCommand},
		{"backend", errors.New(errors.ErrBackend, "clone failed"), ExitFailure},
		{"plain error", stderrors.New("flag provided but not defined"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestCurrentUser(t *testing.T) {
	if os.Getenv("USER") == "" && os.Getenv("USERNAME") == "" {
		t.Skip("no user in environment")
	}
	assert.NotEmpty(t, currentUser())
}

func TestHelpTopics(t *testing.T) {
	setupHome(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"index", []string{"help", "topics"}, "  global-config\n"},
		{"manifest", []string{"help", "manifest"}, "# The deps manifest"},
		{"option", []string{"help", "prune"}, "`--no-prune` turns it off"},
		{"command", []string{"help", "update"}, "deps update"},
		{"case-insensitive", []string{"HELP", "Manifest"}, "# The deps manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}
