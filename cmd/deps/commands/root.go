// Package commands implements the deps command line.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/deps/internal/version"
	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/logging"
	"github.com/arthur-debert/deps/pkg/paths"
	"github.com/arthur-debert/deps/pkg/style"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command
type options struct {
	verbosity    int
	force        bool
	prune        bool
	noPrune      bool
	manifestPath string
	format       string
}

func (o *options) printer(out io.Writer) (*style.Printer, error) {
	format, err := style.ParseFormat(o.format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	return style.NewPrinter(out, format), nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "deps <command>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		// Subcommands are matched exactly by cobra; anything reaching here
		// is retried case-insensitively before being rejected.
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New(errors.ErrUnknownCommand, MsgErrNoCommand)
			}
			name := strings.ToLower(strings.TrimSpace(args[0]))
			for _, sub := range cmd.Commands() {
				if sub.Name() != name {
					continue
				}
				if sub.RunE != nil {
					return sub.RunE(cmd, args[1:])
				}
				if sub.Run != nil {
					sub.Run(sub, args[1:])
					return nil
				}
			}
			return errors.Newf(errors.ErrUnknownCommand, MsgErrUnknownCommand, args[0])
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("deps version {{.Version}} (commit %s, built %s)\n", version.Commit, version.Date))

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVarP(&opts.force, "force", "f", false, MsgFlagForce)
	flags.BoolVar(&opts.prune, "prune", false, MsgFlagPrune)
	flags.BoolVar(&opts.noPrune, "no-prune", false, MsgFlagNoPrune)
	flags.StringVar(&opts.manifestPath, "manifest", paths.ManifestFile, MsgFlagManifest)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newGlobalCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newUpdateCmd(opts))

	installTopics(rootCmd, opts)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	return rootCmd
}
