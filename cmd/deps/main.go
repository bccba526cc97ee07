package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/arthur-debert/deps/cmd/deps/commands"
	"github.com/arthur-debert/deps/pkg/logging"
	"github.com/arthur-debert/deps/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := commands.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		logger := logging.GetLogger("main")
		logger.Error().Err(err).Msg("Command failed")
		style.NewPrinter(os.Stderr, style.FormatAuto).Error(err)
		os.Exit(commands.ExitCode(err))
	}
}
