// Package cleanup removes leftovers of uninstalled applications: their
// user configuration directories and root-owned system files.
package cleanup

import (
	"github.com/omarchy-fork/omacustom/pkg/logging"
	"github.com/omarchy-fork/omacustom/pkg/system"
	"github.com/omarchy-fork/omacustom/pkg/types"
	"github.com/rs/zerolog"
)

// Report lists what a cleanup call did
type Report struct {
	Removed []string
	Failed  []string
	// Absent holds paths that did not exist
	Absent []string
}

// OK reports whether nothing failed
func (r Report) OK() bool {
	return len(r.Failed) == 0
}

// Cleaner removes files and directories
type Cleaner struct {
	fs     types.FS
	runner system.Runner
	logger zerolog.Logger
}

// New creates a Cleaner. runner is used for files that need sudo.
func New(fs types.FS, runner system.Runner) *Cleaner {
	return &Cleaner{
		fs:     fs,
		runner: runner,
		logger: logging.GetLogger("cleanup"),
	}
}

// RemoveDirs deletes each directory tree that exists
func (c *Cleaner) RemoveDirs(dirs []string) Report {
	var report Report
	for _, dir := range dirs {
		if _, err := c.fs.Lstat(dir); err != nil {
			report.Absent = append(report.Absent, dir)
			continue
		}
		if err := c.fs.RemoveAll(dir); err != nil {
			c.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to remove directory")
			report.Failed = append(report.Failed, dir)
			continue
		}
		c.logger.Info().Str("dir", dir).Msg("Removed directory")
		report.Removed = append(report.Removed, dir)
	}
	return report
}

// RemoveSystemFiles deletes root-owned files with sudo rm -f
func (c *Cleaner) RemoveSystemFiles(files []string) Report {
	var report Report
	for _, file := range files {
		if _, err := c.fs.Lstat(file); err != nil {
			c.logger.Debug().Str("file", file).Msg("System file not found")
			report.Absent = append(report.Absent, file)
			continue
		}
		if !c.runner.Run("sudo rm -f " + file) {
			report.Failed = append(report.Failed, file)
			continue
		}
		c.logger.Info().Str("file", file).Msg("Removed system file")
		report.Removed = append(report.Removed, file)
	}
	return report
}
