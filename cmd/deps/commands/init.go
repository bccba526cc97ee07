package commands

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/manifest"
	"github.com/arthur-debert/deps/pkg/paths"
	"github.com/spf13/cobra"
)

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Long:  MsgInitLong + "\n\nA manifest with dependencies looks like:\n\n" + MsgManifestExample,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := opts.printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			fs := fsys()
			if _, err := loadGlobal(fs, printer); err != nil {
				return err
			}

			path, err := paths.Absolute(opts.manifestPath)
			if err != nil {
				return err
			}
			exists, err := manifest.Exists(fs, path)
			if err != nil {
				return err
			}
			if exists {
				return errors.New(errors.ErrManifestFound, MsgErrAlreadyInitialized).
					WithDetail("manifest", path)
			}

			skeleton := manifest.Skeleton(filepath.Base(filepath.Dir(path)), currentUser())
			if err := manifest.Save(fs, path, skeleton); err != nil {
				return err
			}
			printer.Successf(MsgManifestCreated, path)
			return nil
		},
	}
}

// currentUser returns the login name of the user running deps, or "" when
// it cannot be determined.
func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		// DOMAIN\user on Windows
		return filepath.Base(filepath.FromSlash(u.Username))
	}
	for _, key := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(key); name != "" {
			return name
		}
	}
	return ""
}
