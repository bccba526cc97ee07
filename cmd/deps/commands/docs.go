package commands

import (
	"io"

	"github.com/arthur-debert/deps/internal/version"
	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// Shells lists the shells completion scripts can be generated for
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// GenerateCompletion writes the completion script of root for shell.
func GenerateCompletion(root *cobra.Command, shell string, w io.Writer) error {
	var err error
	switch shell {
	case "bash":
		err = root.GenBashCompletionV2(w, true)
	case "zsh":
		err = root.GenZshCompletion(w)
	case "fish":
		err = root.GenFishCompletion(w, true)
	case "powershell":
		err = root.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell: %s", shell).
			WithDetail("supported", Shells)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to generate %s completion", shell)
	}
	return nil
}

// GenerateManPage writes the deps(1) man page.
func GenerateManPage(root *cobra.Command, w io.Writer) error {
	header := &doc.GenManHeader{
		Title:   "DEPS",
		Section: "1",
		Source:  "deps " + version.Version,
		Manual:  "deps manual",
	}
	if err := doc.GenMan(root, header, w); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to generate man page")
	}
	return nil
}
