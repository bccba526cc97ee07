// Package credentials supplies SSH authentication material to the version
// control backend: key paths from the global configuration, expanded on
// demand, and a passphrase read from the terminal at most once per run.
package credentials

import (
	"path/filepath"

	"github.com/arthur-debert/deps/pkg/config"
	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/logging"
	"github.com/arthur-debert/deps/pkg/paths"
)

// PassphrasePrompt is shown when asking for the private key passphrase
const PassphrasePrompt = "Enter Passphrase: "

// Credential is an SSH key credential
type Credential struct {
	Username   string
	PublicKey  string
	PrivateKey string
	Passphrase string
}

// Provider is invoked by the backend whenever a remote requires
// authentication. usernameFromURL is the user encoded in the remote URL, or
// empty when the URL carries none.
type Provider interface {
	Credentials(usernameFromURL string) (*Credential, error)
}

// SSHProvider resolves credentials from the global configuration.
type SSHProvider struct {
	ssh      *config.SSH
	prompter Prompter

	passphrase string
	prompted   bool
}

// NewSSHProvider returns a provider for cfg. prompter is only used when the
// configured key is protected.
func NewSSHProvider(cfg *config.Global, prompter Prompter) *SSHProvider {
	var ssh *config.SSH
	if cfg != nil && cfg.SSH != nil {
		copied := *cfg.SSH
		ssh = &copied
	}
	return &SSHProvider{ssh: ssh, prompter: prompter}
}

// EnsurePassphrase reads the key passphrase when the configured key is
// protected and it has not been read yet. It is a no-op otherwise.
func (p *SSHProvider) EnsurePassphrase() error {
	if p.prompted || p.ssh == nil || !p.ssh.Protected {
		return nil
	}
	if p.prompter == nil {
		return errors.New(errors.ErrAuth, "private key is protected but no prompt is available")
	}

	pass, err := p.prompter.ReadPassphrase(PassphrasePrompt)
	if err != nil {
		return errors.Wrap(err, errors.ErrAuth, "failed to read passphrase")
	}
	p.passphrase = pass
	p.prompted = true

	logger := logging.GetLogger("credentials")
	logger.Debug().Msg("Passphrase cached for this run")
	return nil
}

// ResolveKeyPaths expands the configured public and private key paths.
func (p *SSHProvider) ResolveKeyPaths() (public, private string, err error) {
	if p.ssh == nil {
		return defaultKeyPaths()
	}
	public, err = paths.ExpandPath(p.ssh.Public)
	if err != nil {
		return "", "", err
	}
	private, err = paths.ExpandPath(p.ssh.Private)
	if err != nil {
		return "", "", err
	}
	return public, private, nil
}

// Credentials implements Provider.
func (p *SSHProvider) Credentials(usernameFromURL string) (*Credential, error) {
	if usernameFromURL == "" {
		return nil, errors.New(errors.ErrAuth, "missing username in URL")
	}

	public, private, err := p.ResolveKeyPaths()
	if err != nil {
		return nil, err
	}

	cred := &Credential{
		Username:   usernameFromURL,
		PublicKey:  public,
		PrivateKey: private,
	}
	if p.ssh != nil {
		cred.Passphrase = p.passphrase
	}

	logger := logging.GetLogger("credentials")
	logger.Debug().
		Str("user", usernameFromURL).
		Str("privateKey", private).
		Bool("passphrase", cred.Passphrase != "").
		Msg("Supplying SSH credentials")

	return cred, nil
}

func defaultKeyPaths() (public, private string, err error) {
	home, err := paths.GetHomeDirectory()
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrAuth, "%s not set", paths.HomeEnvVar())
	}
	base := filepath.Join(home, ".ssh")
	return filepath.Join(base, "id_rsa.pub"), filepath.Join(base, "id_rsa"), nil
}
