package commands

import (
	"github.com/arthur-debert/deps/pkg/config"
	"github.com/arthur-debert/deps/pkg/filesystem"
	"github.com/arthur-debert/deps/pkg/logging"
	"github.com/arthur-debert/deps/pkg/paths"
	"github.com/arthur-debert/deps/pkg/style"
	"github.com/spf13/cobra"
)

func newGlobalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "global",
		Short: MsgGlobalShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := opts.printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if _, err := loadGlobal(fsys(), printer); err != nil {
				return err
			}

			path, err := paths.GlobalConfigPath()
			if err != nil {
				printer.Warningf(MsgNoHomeDir)
				return nil
			}
			printer.Infof(MsgGlobalPath, path)
			return nil
		},
	}
}

// loadGlobal loads ~/.deprc, writing the defaults first when it does not
// exist. Without a home directory the defaults are used as they are.
func loadGlobal(fs filesystem.FS, printer *style.Printer) (*config.Global, error) {
	logger := logging.GetLogger("cmd")

	path, err := paths.GlobalConfigPath()
	if err != nil {
		logger.Warn().Err(err).Msg("No home directory, using default global config")
		printer.Warningf(MsgNoHomeDir)
		return config.Defaults(), nil
	}

	cfg, created, err := config.NewStore(fs, path).LoadOrInit()
	if err != nil {
		return nil, err
	}
	if created {
		printer.Successf(MsgGlobalInitialized)
	}
	return cfg, nil
}

func fsys() filesystem.FS {
	return filesystem.NewOS()
}
