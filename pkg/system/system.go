// Package system runs the external commands omacustom relies on: the
// package manager, sudo, git and the xdg tools.
package system

import (
	"os/exec"
	"strings"

	"github.com/omarchy-fork/omacustom/pkg/logging"
	"github.com/rs/zerolog"
)

// Runner executes shell commands
type Runner interface {
	// Run executes command through the shell and reports success
	Run(command string) bool
	// CommandExists reports whether name is on PATH
	CommandExists(name string) bool
}

// ShellRunner runs commands with sh -c
type ShellRunner struct {
	dryRun bool
	logger zerolog.Logger
}

// NewShellRunner creates a ShellRunner. In dry-run mode commands are only
// logged and always reported as successful.
func NewShellRunner(dryRun bool) *ShellRunner {
	return &ShellRunner{
		dryRun: dryRun,
		logger: logging.GetLogger("system"),
	}
}

func (r *ShellRunner) Run(command string) bool {
	logging.LogCommand(command)
	if r.dryRun {
		r.logger.Info().Str("command", command).Msg("Dry run, not executing")
		return true
	}

	cmd := exec.Command("sh", "-c", command)
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("command", command).
			Str("output", strings.TrimSpace(string(output))).
			Msg("Command failed")
		return false
	}
	r.logger.Debug().Str("command", command).Msg("Command succeeded")
	return true
}

func (r *ShellRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
