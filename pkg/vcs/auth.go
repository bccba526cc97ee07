package vcs

import (
	"github.com/arthur-debert/deps/pkg/credentials"
	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/go-git/go-git/v5/plumbing/transport"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// NeedsAuth reports whether url is an SSH remote. Other transports are
// never given credentials.
func NeedsAuth(url string) bool {
	ep, err := transport.NewEndpoint(url)
	return err == nil && ep.Protocol == "ssh"
}

// authFor asks creds for authentication material when url needs it. Only
// SSH remotes authenticate with keys; other transports get no auth method.
func authFor(url string, creds credentials.Provider) (transport.AuthMethod, error) {
	ep, err := transport.NewEndpoint(url)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBackend, "invalid remote URL %q", url)
	}
	if ep.Protocol != "ssh" || creds == nil {
		return nil, nil
	}

	cred, err := creds.Credentials(ep.User)
	if err != nil {
		return nil, err
	}

	keys, err := gitssh.NewPublicKeysFromFile(cred.Username, cred.PrivateKey, cred.Passphrase)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAuth, "failed to load private key %s", cred.PrivateKey).
			WithDetail("publicKey", cred.PublicKey)
	}
	return keys, nil
}
