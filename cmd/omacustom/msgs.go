package omacustom

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Personalize an Omarchy install, repeatably and reversibly"
	MsgApplyShort      = "Apply every customization"
	MsgPlanShort       = "Show what apply would change, without changing anything"
	MsgRestoreShort    = "Restore files from their .original backups"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Prompts
	MsgConfirmApply   = "Apply omacustom customizations to this system?"
	MsgConfirmApplyD  = "Packages are removed and installed, and configuration files are patched (with backups)."
	MsgConfirmRestore = "Overwrite customized files with their backups?"
	MsgCancelled      = "Cancelled."

	// Status messages
	MsgVersionFormat = "omacustom version %s\n  commit: %s\n  built:  %s\n"
	MsgManWritten    = "Man pages written to %s\n"

	// Error messages
	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrNoCommand  = "no command specified"
	MsgErrNeedsYes   = "no terminal to confirm on, pass --yes to proceed"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Keep file changes in memory and log commands instead of running them"
	MsgFlagConfig   = "Configuration file (default $XDG_CONFIG_HOME/omacustom/config.toml)"
	MsgFlagYes      = "Do not ask for confirmation"
	MsgFlagTerminal = "Terminal program bound in the Toshy keymap"
	MsgFlagFormat   = "Output format (toml or yaml)"
	MsgFlagOutput   = "Output style (auto, term or text)"
	MsgFlagManDir   = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/restore-long.txt
	msgRestoreLongRaw string
	MsgRestoreLong    = strings.TrimSpace(msgRestoreLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
