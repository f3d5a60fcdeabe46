// Package restore copies backup sidecars back over the files they were
// taken from. It works from the sidecars alone and needs no record of
// which patches ran.
package restore

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/omarchy-fork/omacustom/pkg/backup"
	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/omarchy-fork/omacustom/pkg/filesystem"
	"github.com/omarchy-fork/omacustom/pkg/logging"
	"github.com/omarchy-fork/omacustom/pkg/types"
	"github.com/rs/zerolog"
)

// Failure is a sidecar that could not be restored
type Failure struct {
	Backup string
	Target string
	Err    error
}

// Report lists what a restore run did
type Report struct {
	// Restored holds the target paths that were overwritten, sorted
	Restored []string
	Failed   []Failure
}

// Count returns the number of files restored
func (r Report) Count() int {
	return len(r.Restored)
}

// Engine restores files from sidecars
type Engine struct {
	fs     types.FS
	suffix string
	known  []string
	logger zerolog.Logger
}

// New creates an Engine. known lists sidecar paths that are checked even
// when they live outside every scanned root.
func New(fs types.FS, suffix string, known []string) *Engine {
	if suffix == "" {
		suffix = backup.DefaultSuffix
	}
	return &Engine{
		fs:     fs,
		suffix: suffix,
		known:  known,
		logger: logging.GetLogger("restore"),
	}
}

// TargetFor strips exactly one suffix from a sidecar path
func (e *Engine) TargetFor(sidecar string) string {
	return strings.TrimSuffix(sidecar, e.suffix)
}

// Discover returns every existing sidecar among the known paths and under
// roots, de-duplicated and sorted.
func (e *Engine) Discover(roots []string) []string {
	seen := make(map[string]struct{})
	add := func(path string) {
		seen[filepath.Clean(path)] = struct{}{}
	}

	for _, path := range e.known {
		if info, err := e.fs.Lstat(path); err == nil && info.Mode().IsRegular() {
			add(path)
		}
	}
	for _, root := range roots {
		e.scan(root, add)
	}

	sidecars := make([]string, 0, len(seen))
	for path := range seen {
		sidecars = append(sidecars, path)
	}
	sort.Strings(sidecars)
	return sidecars
}

func (e *Engine) scan(dir string, add func(string)) {
	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		e.logger.Debug().Err(err).Str("dir", dir).Msg("Cannot read directory, skipping")
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			e.scan(path, add)
		case entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), e.suffix) && entry.Name() != e.suffix:
			add(path)
		}
	}
}

// RestoreAll copies every discovered sidecar over its target. Sidecars are
// never removed, so running it twice restores the same content again.
func (e *Engine) RestoreAll(roots []string) Report {
	var report Report
	for _, sidecar := range e.Discover(roots) {
		target := e.TargetFor(sidecar)
		if err := filesystem.CopyFile(e.fs, sidecar, target); err != nil {
			wrapped := errors.WrapIO(err, "restore", target).WithDetail("backup", sidecar)
			e.logger.Error().Err(wrapped).Str("backup", sidecar).Msg("Failed to restore")
			report.Failed = append(report.Failed, Failure{Backup: sidecar, Target: target, Err: wrapped})
			continue
		}
		e.logger.Info().Str("path", target).Str("backup", sidecar).Msg("Restored from backup")
		report.Restored = append(report.Restored, target)
	}

	if report.Count() == 0 && len(report.Failed) == 0 {
		e.logger.Warn().Msg("No backup files found to restore")
	}
	return report
}
