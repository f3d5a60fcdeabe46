package style

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/omarchy-fork/omacustom/pkg/customize"
	"github.com/omarchy-fork/omacustom/pkg/restore"
	"github.com/omarchy-fork/omacustom/pkg/session"
)

// Renderer turns results into printable text
type Renderer struct {
	format Format
}

// NewRenderer creates a Renderer. FormatAuto is resolved against stdout.
func NewRenderer(format Format) *Renderer {
	if format == FormatAuto {
		format = DetectFormat(os.Stdout)
	}
	return &Renderer{format: format}
}

// Format returns the resolved output format
func (r *Renderer) Format() Format {
	return r.format
}

func (r *Renderer) styled() bool {
	return r.format == FormatTerminal
}

func (r *Renderer) paint(s lipgloss.Style, text string) string {
	if !r.styled() {
		return text
	}
	return s.Render(text)
}

// Outcome renders one session outcome on a single line
func (r *Renderer) Outcome(o session.Outcome) string {
	badge := fmt.Sprintf("%-15s", string(o.State))
	if r.styled() {
		badge = StateStyle(o.State).Sprint(badge)
	}

	line := fmt.Sprintf("  %s %s %s %s", Symbol(o.State), badge, o.Name, r.paint(PathStyle, o.Path))
	switch {
	case o.Err != nil:
		line += "\n      " + r.paint(ErrorStyle, o.Err.Error())
	case o.Detail != "":
		line += r.paint(MutedStyle, " ("+o.Detail+")")
	}
	if o.BackupWarning != "" {
		line += "\n      " + r.paint(WarningStyle, "backup: "+o.BackupWarning)
	}
	return line
}

// Step renders one non-file step
func (r *Renderer) Step(s customize.StepResult) string {
	var mark string
	switch {
	case s.Skipped:
		mark = r.paint(WarningStyle, "-")
	case s.OK:
		mark = r.paint(SuccessStyle, "✓")
	default:
		mark = r.paint(ErrorStyle, "!")
	}
	line := fmt.Sprintf("  %s %s", mark, s.Name)
	if s.Detail != "" {
		line += r.paint(MutedStyle, " ("+s.Detail+")")
	}
	return line
}

// Report renders a full run: steps, file patches, then the summary of
// what is actually in place.
func (r *Renderer) Report(rep customize.Report, dryRun bool) string {
	var b strings.Builder

	b.WriteString(r.paint(TitleStyle, "System steps") + "\n")
	for _, s := range rep.Steps {
		b.WriteString(r.Step(s) + "\n")
	}

	b.WriteString("\n" + r.paint(TitleStyle, "Configuration files") + "\n")
	for _, o := range rep.Outcomes {
		b.WriteString(r.Outcome(o) + "\n")
	}

	b.WriteString("\n" + r.paint(TitleStyle, "Summary") + "\n")
	summary := rep.Summary()
	if len(summary) == 0 {
		b.WriteString(r.paint(MutedStyle, "  Nothing was customized") + "\n")
	}
	for _, line := range summary {
		b.WriteString(r.paint(SuccessStyle, "  ✓ ") + line + "\n")
	}
	if n := rep.Failures(); n > 0 {
		b.WriteString(r.paint(ErrorStyle, fmt.Sprintf("  %d step(s) failed, see above", n)) + "\n")
	}
	if dryRun {
		b.WriteString("\n" + r.paint(WarningStyle, "DRY RUN - no files or packages were changed") + "\n")
	}
	return b.String()
}

// Restore renders a restore report
func (r *Renderer) Restore(rep restore.Report) string {
	var b strings.Builder
	for _, path := range rep.Restored {
		b.WriteString(r.paint(SuccessStyle, "  ✓ ") + "Restored " + r.paint(PathStyle, path) + "\n")
	}
	for _, f := range rep.Failed {
		b.WriteString(r.paint(ErrorStyle, "  ! ") + "Failed to restore " + f.Target + ": " + f.Err.Error() + "\n")
	}
	if rep.Count() == 0 && len(rep.Failed) == 0 {
		b.WriteString(r.paint(MutedStyle, "- No backup files found to restore") + "\n")
	} else {
		b.WriteString(fmt.Sprintf("Restored %d file(s) from backups\n", rep.Count()))
	}
	return b.String()
}

// Markdown renders md with glamour on a terminal and returns it as is
// otherwise.
func (r *Renderer) Markdown(md string) string {
	if !r.styled() {
		return md
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// PlanMarkdown describes what a dry run found, as a markdown document
func PlanMarkdown(rep customize.Report) string {
	var b strings.Builder
	b.WriteString("# omacustom plan\n\n")

	b.WriteString("## System steps\n\n")
	b.WriteString("| Step | Result | Detail |\n|---|---|---|\n")
	for _, s := range rep.Steps {
		result := "ok"
		switch {
		case s.Skipped:
			result = "skipped"
		case !s.OK:
			result = "failed"
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", s.Name, result, escapeCell(s.Detail)))
	}

	b.WriteString("\n## Configuration files\n\n")
	b.WriteString("| Customization | File | Result |\n|---|---|---|\n")
	for _, o := range rep.Outcomes {
		result := string(o.State)
		if o.State == session.Applied {
			result = "will change"
		}
		if o.Err != nil {
			result += ": " + o.Err.Error()
		}
		b.WriteString(fmt.Sprintf("| %s | `%s` | %s |\n", o.Name, o.Path, escapeCell(result)))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
