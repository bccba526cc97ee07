package commands

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort   = "A minimal dependency vendoring tool"
	MsgGlobalShort = "Print the global configuration path"
	MsgInitShort   = "Create a deps.toml manifest in the current directory"
	MsgUpdateShort = "Converge the vendor directory with the manifest"

	// Status messages
	MsgGlobalInitialized = "Initializing global configuration."
	MsgGlobalPath        = "Global configuration path: %q"
	MsgNoHomeDir         = "Could not get homedir, using default global config"
	MsgManifestCreated   = "Created manifest [path]%s[/path]"
	MsgUpdateDone        = "Dependencies up to date"

	// Error messages
	MsgErrAlreadyInitialized = "Already initialized"
	MsgErrUnknownCommand     = "Unknown command: %q"
	MsgErrNoCommand          = "no command specified"
	MsgErrBadFlags           = "--prune and --no-prune are mutually exclusive"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagForce    = "Delete and recreate the vendor directory before updating"
	MsgFlagPrune    = "Remove vendor entries no dependency claims"
	MsgFlagNoPrune  = "Keep unclaimed vendor entries even if pruning is configured"
	MsgFlagManifest = "Path to the manifest (.toml, .yaml or .yml)"
	MsgFlagFormat   = "Output format: auto, term or text"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/update-example.txt
	msgUpdateExampleRaw string
	MsgUpdateExample    = strings.TrimRight(msgUpdateExampleRaw, "\n")

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/manifest-example.txt
	msgManifestExampleRaw string
	MsgManifestExample    = strings.TrimSpace(msgManifestExampleRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
