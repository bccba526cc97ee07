package commands

import (
	"path/filepath"

	"github.com/arthur-debert/deps/pkg/config"
	"github.com/arthur-debert/deps/pkg/credentials"
	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/filesystem"
	"github.com/arthur-debert/deps/pkg/logging"
	"github.com/arthur-debert/deps/pkg/manifest"
	"github.com/arthur-debert/deps/pkg/paths"
	"github.com/arthur-debert/deps/pkg/sync"
	"github.com/arthur-debert/deps/pkg/vcs"
	"github.com/spf13/cobra"
)

func newUpdateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "update",
		Short:   MsgUpdateShort,
		Long:    MsgUpdateLong,
		Example: MsgUpdateExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.update")
			done := logging.LogOperationStart(logger, "update")
			defer done()

			printer, err := opts.printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if opts.prune && opts.noPrune {
				return errors.New(errors.ErrInvalidInput, MsgErrBadFlags)
			}

			fs := fsys()
			global, err := loadGlobal(fs, printer)
			if err != nil {
				return err
			}

			manifestPath, err := paths.Absolute(opts.manifestPath)
			if err != nil {
				return err
			}
			m, err := manifest.Load(fs, manifestPath)
			if err != nil {
				return err
			}

			session := sync.Session{
				Global:   global,
				Manifest: m,
				Root:     filepath.Dir(manifestPath),
				Force:    opts.force,
				Prune:    opts.shouldPrune(global),
			}

			var progress []vcs.Option
			if opts.verbosity > 0 {
				progress = append(progress, vcs.Progress(cmd.ErrOrStderr()))
			}

			planner := sync.NewPlanner(
				fs,
				filesystem.NewLinker(fs),
				vcs.NewGoGit(progress...),
				credentials.NewSSHProvider(global, credentials.NewTerminalPrompter()),
				printer,
			)
			if err := planner.Run(cmd.Context(), session); err != nil {
				return err
			}

			printer.Successf(MsgUpdateDone)
			return nil
		},
	}
}

// shouldPrune applies --prune and --no-prune over the configured default.
func (o *options) shouldPrune(global *config.Global) bool {
	switch {
	case o.prune:
		return true
	case o.noPrune:
		return false
	default:
		return global != nil && global.General.Prune
	}
}
