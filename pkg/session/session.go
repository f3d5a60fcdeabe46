// Package session runs one patch against one file: it checks the target,
// takes the one-time backup, applies exactly one patcher and turns every
// result or error into an Outcome. Nothing escapes a session, so a failing
// file never stops the files after it.
package session

import (
	"fmt"

	"github.com/omarchy-fork/omacustom/pkg/backup"
	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/omarchy-fork/omacustom/pkg/logging"
	"github.com/omarchy-fork/omacustom/pkg/types"
	"github.com/rs/zerolog"
)

// State is a session's position in its lifecycle
type State string

const (
	Unchecked      State = "unchecked"
	BackedUp       State = "backed-up"
	Applied        State = "applied"
	AlreadyPresent State = "already-present"
	Skipped        State = "skipped"
	Failed         State = "failed"
)

// Change is what a patch did to its file
type Change struct {
	// Modified is true when the file was written
	Modified bool
	Detail   string
}

// Patch is one customization of one file
type Patch interface {
	Name() string
	Path() string
	// MustExist is false for patches that create their target
	MustExist() bool
	Apply(fsys types.FS) (Change, error)
}

// Outcome records how a session ended
type Outcome struct {
	Name          string
	Path          string
	State         State
	Backup        backup.Result
	BackupWarning string
	Err           error
	Detail        string
}

// Succeeded reports whether the customization is in place
func (o Outcome) Succeeded() bool {
	return o.State == Applied || o.State == AlreadyPresent
}

func (o Outcome) String() string {
	s := fmt.Sprintf("%s: %s (%s)", o.State, o.Name, o.Path)
	switch {
	case o.Err != nil:
		s += ": " + o.Err.Error()
	case o.Detail != "":
		s += ": " + o.Detail
	}
	if o.BackupWarning != "" {
		s += " [backup: " + o.BackupWarning + "]"
	}
	return s
}

// Runner executes patches against a filesystem
type Runner struct {
	fs      types.FS
	backups *backup.Manager
	logger  zerolog.Logger
}

// NewRunner creates a Runner whose backups use suffix
func NewRunner(fs types.FS, suffix string) *Runner {
	return &Runner{
		fs:      fs,
		backups: backup.NewWithSuffix(fs, suffix),
		logger:  logging.GetLogger("session"),
	}
}

// Run drives a single patch through the session states
func (r *Runner) Run(p Patch) Outcome {
	out := Outcome{Name: p.Name(), Path: p.Path(), State: Unchecked, Backup: backup.Skipped}
	logger := r.logger.With().Str("patch", p.Name()).Str("path", p.Path()).Logger()

	if _, err := r.fs.Stat(p.Path()); err != nil && p.MustExist() {
		return r.finish(logger, out, errors.WrapIO(err, "stat", p.Path()))
	}

	result, err := r.backups.EnsureBackup(p.Path())
	out.Backup = result
	if err != nil {
		out.BackupWarning = err.Error()
		logger.Warn().Err(err).Msg("Continuing without backup")
	}
	out.State = BackedUp

	change, err := p.Apply(r.fs)
	out.Detail = change.Detail
	if err != nil {
		return r.finish(logger, out, err)
	}
	if change.Modified {
		out.State = Applied
	} else {
		out.State = AlreadyPresent
	}
	return r.finish(logger, out, nil)
}

// RunAll runs every patch in order, whatever the earlier outcomes were
func (r *Runner) RunAll(patches []Patch) []Outcome {
	outcomes := make([]Outcome, 0, len(patches))
	for _, p := range patches {
		outcomes = append(outcomes, r.Run(p))
	}
	return outcomes
}

func (r *Runner) finish(logger zerolog.Logger, out Outcome, err error) Outcome {
	if err != nil {
		out.Err = err
		switch errors.GetErrorCode(err) {
		case errors.ErrNotFound, errors.ErrMarkerAbsent:
			out.State = Skipped
		default:
			out.State = Failed
		}
	}

	switch out.State {
	case Applied:
		logger.Info().Str("backup", out.Backup.String()).Msg("Patch applied")
	case AlreadyPresent:
		logger.Info().Msg("Patch already present")
	case Skipped:
		logger.Warn().Err(out.Err).Msg("Patch skipped")
	case Failed:
		logger.Error().Err(out.Err).Msg("Patch failed")
	}
	return out
}
