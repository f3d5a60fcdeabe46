package customize

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/omarchy-fork/omacustom/pkg/cleanup"
	"github.com/omarchy-fork/omacustom/pkg/config"
	"github.com/omarchy-fork/omacustom/pkg/desktop"
	"github.com/omarchy-fork/omacustom/pkg/logging"
	"github.com/omarchy-fork/omacustom/pkg/paths"
	"github.com/omarchy-fork/omacustom/pkg/session"
	"github.com/omarchy-fork/omacustom/pkg/system"
	"github.com/omarchy-fork/omacustom/pkg/types"
	"github.com/rs/zerolog"
)

// StepResult records one non-file step
type StepResult struct {
	Name string
	OK   bool
	// Skipped is set when a required tool was missing
	Skipped bool
	Detail  string
	// Summary is the line shown to the user when OK
	Summary string
}

// Report is the result of a full run
type Report struct {
	Steps    []StepResult
	Outcomes []session.Outcome
}

// Summary lists only the customizations that are actually in place
func (r Report) Summary() []string {
	var lines []string
	for _, s := range r.Steps {
		if s.OK && s.Summary != "" {
			lines = append(lines, s.Summary)
		}
	}
	for _, o := range r.Outcomes {
		switch o.State {
		case session.Applied:
			lines = append(lines, fmt.Sprintf("Applied %s to %s", o.Name, o.Path))
		case session.AlreadyPresent:
			lines = append(lines, fmt.Sprintf("%s already present in %s", o.Name, o.Path))
		}
	}
	return lines
}

// Failures counts failed steps and sessions; skips are not failures
func (r Report) Failures() int {
	n := 0
	for _, s := range r.Steps {
		if !s.OK && !s.Skipped {
			n++
		}
	}
	for _, o := range r.Outcomes {
		if o.State == session.Failed {
			n++
		}
	}
	return n
}

// Customizer runs the customization steps
type Customizer struct {
	cfg      *config.Config
	paths    paths.Paths
	fs       types.FS
	runner   system.Runner
	sessions *session.Runner
	logger   zerolog.Logger
}

// New creates a Customizer. Every file access goes through fs and every
// external command through runner, so a dry run only needs a dry-run FS
// and runner.
func New(cfg *config.Config, p paths.Paths, fs types.FS, runner system.Runner) *Customizer {
	return &Customizer{
		cfg:      cfg,
		paths:    p,
		fs:       fs,
		runner:   runner,
		sessions: session.NewRunner(fs, cfg.Backup.Suffix),
		logger:   logging.GetLogger("customize"),
	}
}

// Run executes every step in order
func (c *Customizer) Run() Report {
	done := logging.LogOperationStart(c.logger, "customize")
	defer done()

	var report Report
	report.Steps = append(report.Steps, c.managePackages()...)
	report.Steps = append(report.Steps,
		c.linkBrowser(),
		c.removeDirs(),
		c.removeSystemFiles(),
		c.manageDesktopFiles(),
		c.removeWebApps(),
	)
	report.Outcomes = c.sessions.RunAll(c.Patches())
	report.Steps = append(report.Steps,
		c.resetGitConfig(),
		c.setDefaultBrowser(),
		c.updateDesktopDatabase(),
	)

	c.logger.Info().
		Int("steps", len(report.Steps)).
		Int("patches", len(report.Outcomes)).
		Int("failures", report.Failures()).
		Msg("Customization finished")
	return report
}

func (c *Customizer) managePackages() []StepResult {
	pm := c.cfg.PackageManager
	if !c.runner.CommandExists(pm) {
		c.logger.Warn().Str("package_manager", pm).Msg("Package manager not found, skipping package changes")
		return []StepResult{{Name: "packages", Skipped: true, Detail: pm + " not found"}}
	}

	var results []StepResult
	for _, action := range c.cfg.Packages {
		if len(action.Packages) == 0 {
			continue
		}
		list := strings.Join(action.Packages, " ")
		name := fmt.Sprintf("%s %s", action.Action, action.Name)

		var command, summary string
		if action.Action == config.ActionInstall {
			command = fmt.Sprintf("%s -S --noconfirm --needed %s", pm, list)
			summary = "Installed " + strings.Join(action.Packages, ", ")
		} else {
			command = fmt.Sprintf("%s -Rns --noconfirm %s", pm, list)
			summary = "Removed " + strings.Join(action.Packages, ", ")
		}

		ok := c.runner.Run(command)
		detail := list
		if !ok {
			detail = "failed or already done: " + list
		}
		results = append(results, StepResult{Name: name, OK: ok, Detail: detail, Summary: summary})
	}
	return results
}

func (c *Customizer) linkBrowser() StepResult {
	b := c.cfg.Browser
	step := StepResult{Name: "browser symlink"}
	if b.Symlink == "" {
		step.Skipped = true
		step.Detail = "no symlink configured"
		return step
	}
	if !c.runner.CommandExists(filepath.Base(b.Desktop.Exec)) {
		step.Skipped = true
		step.Detail = b.Desktop.Exec + " not found"
		return step
	}

	c.runner.Run("sudo rm -f " + b.Symlink)
	step.OK = c.runner.Run(fmt.Sprintf("sudo ln -sf %s %s", b.Desktop.Exec, b.Symlink))
	step.Detail = fmt.Sprintf("%s -> %s", b.Symlink, b.Desktop.Exec)
	step.Summary = fmt.Sprintf("Linked %s to %s", b.Symlink, b.Desktop.Exec)
	return step
}

func (c *Customizer) removeDirs() StepResult {
	dirs := make([]string, 0, len(c.cfg.Cleanup.Dirs))
	for _, dir := range c.cfg.Cleanup.Dirs {
		dirs = append(dirs, c.paths.ExpandHome(dir))
	}

	report := cleanup.New(c.fs, c.runner).RemoveDirs(dirs)
	return StepResult{
		Name:    "config directories",
		OK:      report.OK(),
		Detail:  removedDetail(report.Removed, report.Failed),
		Summary: "Removed leftover application directories",
	}
}

func (c *Customizer) removeSystemFiles() StepResult {
	files := make([]string, 0, len(c.cfg.Cleanup.SystemFiles))
	for _, file := range c.cfg.Cleanup.SystemFiles {
		files = append(files, c.paths.SystemPath(file))
	}

	report := cleanup.New(c.fs, c.runner).RemoveSystemFiles(files)
	return StepResult{
		Name:    "system files",
		OK:      report.OK(),
		Detail:  removedDetail(report.Removed, report.Failed),
		Summary: "Removed system files: " + strings.Join(c.cfg.Cleanup.SystemFiles, ", "),
	}
}

func (c *Customizer) manageDesktopFiles() StepResult {
	w := desktop.NewWriter(c.fs, c.paths.ApplicationsDir())
	removed := w.Remove(c.cfg.Cleanup.DesktopFiles)

	step := StepResult{Name: "desktop files"}
	path, err := w.WriteBrowser(c.cfg.Browser.Desktop)
	if err != nil {
		step.Detail = err.Error()
		return step
	}
	step.OK = true
	step.Detail = removedDetail(removed, nil)
	step.Summary = "Wrote Wayland launcher " + path
	return step
}

func (c *Customizer) removeWebApps() StepResult {
	var removed []string
	for _, app := range c.cfg.Cleanup.WebApps {
		if c.runner.Run("web2app-remove " + app) {
			removed = append(removed, app)
		} else {
			c.logger.Debug().Str("app", app).Msg("Web app not found or already removed")
		}
	}
	// Missing web apps are the common case, not a failure.
	step := StepResult{Name: "web apps", OK: true, Detail: removedDetail(removed, nil)}
	if len(removed) > 0 {
		step.Summary = "Removed web apps: " + strings.Join(removed, ", ")
	}
	return step
}

func (c *Customizer) resetGitConfig() StepResult {
	var unset []string
	for _, key := range c.cfg.Git.Unset {
		if c.runner.Run("git config --global --unset " + key) {
			unset = append(unset, key)
		}
	}
	step := StepResult{Name: "git config", OK: true, Detail: "unset: " + strings.Join(unset, ", ")}
	if len(unset) > 0 {
		step.Summary = "Reset git configuration: " + strings.Join(unset, ", ")
	}
	return step
}

func (c *Customizer) setDefaultBrowser() StepResult {
	step := StepResult{Name: "default browser"}
	if c.cfg.Browser.Default == "" {
		step.Skipped = true
		step.Detail = "no default browser configured"
		return step
	}
	if !c.runner.CommandExists("xdg-settings") {
		c.logger.Warn().Msg("xdg-settings not found, skipping default browser")
		step.Skipped = true
		step.Detail = "xdg-settings not found"
		return step
	}

	d := c.cfg.Browser.Default
	commands := []string{
		"xdg-settings set default-web-browser " + d,
		"xdg-mime default " + d + " x-scheme-handler/http",
		"xdg-mime default " + d + " x-scheme-handler/https",
	}
	step.OK = true
	var failed []string
	for _, command := range commands {
		if !c.runner.Run(command) {
			step.OK = false
			failed = append(failed, command)
		}
	}
	step.Detail = d
	if len(failed) > 0 {
		step.Detail = "failed: " + strings.Join(failed, "; ")
	}
	step.Summary = "Set " + d + " as default browser"
	return step
}

func (c *Customizer) updateDesktopDatabase() StepResult {
	step := StepResult{Name: "desktop database"}
	if !c.runner.CommandExists("update-desktop-database") {
		c.logger.Warn().Msg("update-desktop-database not found, skipping")
		step.Skipped = true
		step.Detail = "update-desktop-database not found"
		return step
	}
	step.OK = c.runner.Run("update-desktop-database " + c.paths.ApplicationsDir())
	step.Summary = "Updated desktop database"
	return step
}

func removedDetail(removed, failed []string) string {
	parts := []string{fmt.Sprintf("removed %d", len(removed))}
	if len(failed) > 0 {
		parts = append(parts, "failed: "+strings.Join(failed, ", "))
	}
	return strings.Join(parts, ", ")
}
