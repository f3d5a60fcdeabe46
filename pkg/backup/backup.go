// Package backup keeps a one-time pristine copy of every file omacustom
// mutates. The copy lives next to the file as <path>.original and is never
// overwritten once it exists.
package backup

import (
	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/omarchy-fork/omacustom/pkg/filesystem"
	"github.com/omarchy-fork/omacustom/pkg/logging"
	"github.com/omarchy-fork/omacustom/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultSuffix is appended to a file's path to form its sidecar path.
const DefaultSuffix = ".original"

// Result describes what EnsureBackup did
type Result int

const (
	// Created means a new sidecar was written
	Created Result = iota
	// AlreadyExists means a sidecar was found and left alone
	AlreadyExists
	// Skipped means the file itself does not exist
	Skipped
	// Failed means the copy could not be written
	Failed
)

func (r Result) String() string {
	switch r {
	case Created:
		return "created"
	case AlreadyExists:
		return "already-exists"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Manager creates sidecar backups
type Manager struct {
	fs     types.FS
	suffix string
	logger zerolog.Logger
}

// New creates a Manager using DefaultSuffix
func New(fs types.FS) *Manager {
	return NewWithSuffix(fs, DefaultSuffix)
}

// NewWithSuffix creates a Manager with a custom sidecar suffix
func NewWithSuffix(fs types.FS, suffix string) *Manager {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &Manager{
		fs:     fs,
		suffix: suffix,
		logger: logging.GetLogger("backup"),
	}
}

// Suffix returns the sidecar suffix in use
func (m *Manager) Suffix() string {
	return m.suffix
}

// SidecarPath returns the backup location for path
func (m *Manager) SidecarPath(path string) string {
	return SidecarPath(path, m.suffix)
}

// SidecarPath returns path with suffix appended
func SidecarPath(path, suffix string) string {
	return path + suffix
}

// EnsureBackup copies path to its sidecar unless the file is missing or a
// sidecar already exists. A copy error is returned with Failed; callers
// treat it as a warning and carry on.
func (m *Manager) EnsureBackup(path string) (Result, error) {
	sidecar := m.SidecarPath(path)

	if _, err := m.fs.Stat(path); err != nil {
		m.logger.Debug().Str("path", path).Msg("Nothing to back up, file does not exist")
		return Skipped, nil
	}

	if _, err := m.fs.Lstat(sidecar); err == nil {
		m.logger.Debug().Str("backup", sidecar).Msg("Backup already exists, keeping original")
		return AlreadyExists, nil
	}

	if err := filesystem.CopyFile(m.fs, path, sidecar); err != nil {
		m.logger.Warn().Err(err).Str("path", path).Msg("Failed to create backup")
		return Failed, errors.WrapIO(err, "backup", path).WithDetail("backup", sidecar)
	}

	m.logger.Info().Str("path", path).Str("backup", sidecar).Msg("Created backup")
	return Created, nil
}
