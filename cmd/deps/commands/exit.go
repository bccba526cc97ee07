package commands

import (
	"github.com/arthur-debert/deps/pkg/errors"
)

// Exit statuses
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitUnknownCommand = 2
)

// ExitCode maps an error returned by the root command to the process exit
// status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.HasErrorCode(err, errors.ErrUnknownCommand):
		return ExitUnknownCommand
	default:
		// manifest already present on init included
		return ExitFailure
	}
}
