package sync

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/manifest"
)

// ResolveURL returns the remote URL of dep. An explicit git URL is used
// verbatim; a repo shorthand is joined to the project's git server:
//
//	git@example.com     + team/lib -> git@example.com:team/lib
//	https://example.com + team/lib -> https://git@example.com:team/lib
//	example.com         + team/lib -> git@example.com:team/lib
func ResolveURL(dep manifest.Dependency, gitServer string) (string, error) {
	switch {
	case dep.Git != "" && dep.Repo != "":
		return "", errors.New(errors.ErrResolution, "ambiguous source: both git and repo are set")
	case dep.Git != "":
		return dep.Git, nil
	case dep.Repo != "" && gitServer != "":
		return joinServer(gitServer, dep.Repo), nil
	default:
		return "", errors.New(errors.ErrResolution, "no git url or path")
	}
}

func joinServer(server, repo string) string {
	if strings.Contains(server, "@") {
		return fmt.Sprintf("%s:%s", server, repo)
	}
	if protocol, host, found := strings.Cut(server, "://"); found {
		return fmt.Sprintf("%s://git@%s:%s", protocol, host, repo)
	}
	return fmt.Sprintf("git@%s:%s", server, repo)
}
