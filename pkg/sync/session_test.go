package sync

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/deps/pkg/config"
	"github.com/arthur-debert/deps/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionVendorDir(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere")

	tests := []struct {
		name   string
		libDir string
		global *config.Global
		want   string
	}{
		{"manifest lib-dir", "third_party", config.Defaults(), filepath.Join(root, "third_party")},
		{"absolute lib-dir", abs, config.Defaults(), abs},
		{"global default", "", &config.Global{General: config.General{DefaultLibDir: "deps"}}, filepath.Join(root, "deps")},
		{"builtin fallback", "", nil, filepath.Join(root, "VENDOR")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{
				Global:   tt.global,
				Manifest: &manifest.Manifest{Project: manifest.Project{LibDir: tt.libDir}},
				Root:     root,
			}
			got, err := s.VendorDir()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionDestination(t *testing.T) {
	root := t.TempDir()
	s := Session{
		Global:   config.Defaults(),
		Manifest: &manifest.Manifest{Project: manifest.Project{Name: "app"}},
		Root:     root,
	}

	tests := []struct {
		name string
		dep  manifest.Dependency
		want string
	}{
		{"key", manifest.Dependency{}, filepath.Join(root, "VENDOR", "lib")},
		{"rename", manifest.Dependency{As: "renamed"}, filepath.Join(root, "VENDOR", "renamed")},
		{"into", manifest.Dependency{Into: "tools"}, filepath.Join(root, "tools", "lib")},
		{"into and rename", manifest.Dependency{Into: "./tools/../bin", As: "x"}, filepath.Join(root, "bin", "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Destination("lib", tt.dep)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClaimed(t *testing.T) {
	m := &manifest.Manifest{Dependencies: map[string]manifest.Dependency{
		"a": {Path: "."},
		"b": {Path: ".", As: "bee"},
	}}
	assert.Equal(t, map[string]bool{"a": true, "b": true, "bee": true}, Claimed(m))
}
