package sync

import (
	"testing"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorFor(t *testing.T) {
	tests := []struct {
		name     string
		dep      manifest.Dependency
		want     Selector
		refspecs []string
		detached bool
		wantErr  bool
	}{
		{
			name:     "default",
			dep:      manifest.Dependency{Git: "u"},
			want:     Selector{Kind: SelectDefault},
			refspecs: []string{"+refs/heads/*:refs/remotes/origin/*"},
		},
		{
			name:     "branch",
			dep:      manifest.Dependency{Git: "u", Branch: "main"},
			want:     Selector{Kind: SelectBranch, Name: "main"},
			refspecs: []string{"+refs/heads/main:refs/remotes/origin/main"},
		},
		{
			name:     "tag",
			dep:      manifest.Dependency{Git: "u", Tag: "v1.2.0"},
			want:     Selector{Kind: SelectTag, Name: "v1.2.0"},
			refspecs: []string{"+refs/tags/v1.2.0:refs/tags/v1.2.0"},
			detached: true,
		},
		{
			name:     "revision",
			dep:      manifest.Dependency{Git: "u", Rev: "0a1b2c"},
			want:     Selector{Kind: SelectRevision, Name: "0a1b2c"},
			detached: true,
		},
		{
			name:    "branch and tag",
			dep:     manifest.Dependency{Git: "u", Branch: "main", Tag: "v1"},
			wantErr: true,
		},
		{
			name:    "tag and rev",
			dep:     manifest.Dependency{Git: "u", Tag: "v1", Rev: "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectorFor(tt.dep)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrResolution))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.refspecs, got.Refspecs())
			assert.Equal(t, tt.detached, got.Detached())
		})
	}
}

func TestSelectorString(t *testing.T) {
	assert.Equal(t, "default branch", Selector{Kind: SelectDefault}.String())
	assert.Equal(t, `branch "main"`, Selector{Kind: SelectBranch, Name: "main"}.String())
	assert.Equal(t, `revision "abc"`, Selector{Kind: SelectRevision, Name: "abc"}.String())
}
