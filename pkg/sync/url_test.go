package sync

import (
	"testing"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name      string
		dep       manifest.Dependency
		gitServer string
		want      string
		wantErr   string
	}{
		{
			name:      "bare host injects git user",
			dep:       manifest.Dependency{Repo: "team/lib"},
			gitServer: "example.com",
			want:      "git@example.com:team/lib",
		},
		{
			name:      "server with user",
			dep:       manifest.Dependency{Repo: "team/lib"},
			gitServer: "git@example.com",
			want:      "git@example.com:team/lib",
		},
		{
			name:      "server with scheme",
			dep:       manifest.Dependency{Repo: "team/lib"},
			gitServer: "https://example.com",
			want:      "https://git@example.com:team/lib",
		},
		{
			name:      "scheme and user",
			dep:       manifest.Dependency{Repo: "team/lib"},
			gitServer: "ssh://deploy@example.com",
			want:      "ssh://deploy@example.com:team/lib",
		},
		{
			name: "explicit url verbatim",
			dep:  manifest.Dependency{Git: "https://example.com/team/lib.git"},
			want: "https://example.com/team/lib.git",
		},
		{
			name:      "explicit url ignores server",
			dep:       manifest.Dependency{Git: "git@other.com:x/y"},
			gitServer: "example.com",
			want:      "git@other.com:x/y",
		},
		{
			name:    "repo without server",
			dep:     manifest.Dependency{Repo: "team/lib"},
			wantErr: "no git url or path",
		},
		{
			name:      "nothing",
			dep:       manifest.Dependency{},
			gitServer: "example.com",
			wantErr:   "no git url or path",
		},
		{
			name:      "git and repo",
			dep:       manifest.Dependency{Git: "git@example.com:a/b", Repo: "team/lib"},
			gitServer: "example.com",
			wantErr:   "ambiguous source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.dep, tt.gitServer)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, errors.IsErrorCode(err, errors.ErrResolution))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
