package omacustom

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/omarchy-fork/omacustom/internal/version"
	"github.com/omarchy-fork/omacustom/pkg/config"
	"github.com/omarchy-fork/omacustom/pkg/customize"
	"github.com/omarchy-fork/omacustom/pkg/filesystem"
	"github.com/omarchy-fork/omacustom/pkg/logging"
	"github.com/omarchy-fork/omacustom/pkg/paths"
	"github.com/omarchy-fork/omacustom/pkg/restore"
	"github.com/omarchy-fork/omacustom/pkg/style"
	"github.com/omarchy-fork/omacustom/pkg/system"
	"github.com/omarchy-fork/omacustom/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	dryRun     bool
	configFile string
	home       string
	systemRoot string
	output     string
}

// environment is everything a command needs to run
type environment struct {
	paths    paths.Paths
	cfg      *config.Config
	fs       types.FS
	runner   system.Runner
	renderer *style.Renderer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "omacustom",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile := ""
			if p, err := paths.New(opts.home, opts.systemRoot); err == nil {
				logFile = p.LogFilePath()
			}
			logging.SetupLogger(opts.verbosity, logFile)
			log.Debug().Str("command", cmd.Name()).Bool("dryRun", opts.dryRun).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&opts.output, "output", "o", "auto", MsgFlagOutput)
	flags.StringVar(&opts.home, "home", "", "Home directory to customize (default: current user)")
	flags.StringVar(&opts.systemRoot, "system-root", "", "Prefix for system paths such as /etc")
	_ = flags.MarkHidden("home")
	_ = flags.MarkHidden("system-root")

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newApplyCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newRestoreCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// setup resolves paths, configuration, filesystem, command runner and
// renderer for the current flags. dryRun forces the in-memory filesystem.
func (o *globalOptions) setup(overrides map[string]interface{}, dryRun bool) (*environment, error) {
	p, err := paths.New(o.home, o.systemRoot)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	cfg, err := config.Load(config.LoadOptions{
		Dir:       p.ConfigDir(),
		File:      o.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	format, err := style.ParseFormat(o.output)
	if err != nil {
		return nil, err
	}

	env := &environment{
		paths:    p,
		cfg:      cfg,
		runner:   system.NewShellRunner(dryRun),
		renderer: style.NewRenderer(format),
	}
	if dryRun {
		env.fs = filesystem.NewDryRun()
	} else {
		env.fs = filesystem.NewOS()
	}
	return env, nil
}

// interactive reports whether prompts can be shown
var interactive = func() bool {
	return style.IsTerminal(os.Stdin) && style.IsTerminal(os.Stdout)
}

// confirm asks a yes/no question. Without a terminal nobody can answer,
// so the command refuses to run unless --yes was given.
func confirm(title, description string) (bool, error) {
	if !interactive() {
		return false, errors.New(MsgErrNeedsYes)
	}
	ok := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	return ok, err
}

func newApplyCmd(opts *globalOptions) *cobra.Command {
	var (
		yes      bool
		terminal string
	)

	cmd := &cobra.Command{
		Use:     "apply",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if terminal != "" {
				overrides["terminal"] = terminal
			}
			env, err := opts.setup(overrides, opts.dryRun)
			if err != nil {
				return err
			}

			if !yes && !opts.dryRun {
				ok, err := confirm(MsgConfirmApply, MsgConfirmApplyD)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
					return nil
				}
			}

			report := customize.New(env.cfg, env.paths, env.fs, env.runner).Run()
			fmt.Fprint(cmd.OutOrStdout(), env.renderer.Report(report, opts.dryRun))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	cmd.Flags().StringVarP(&terminal, "terminal", "t", "", MsgFlagTerminal)
	return cmd
}

func newPlanCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "plan",
		Short:   MsgPlanShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.setup(nil, true)
			if err != nil {
				return err
			}
			report := customize.New(env.cfg, env.paths, env.fs, env.runner).Run()
			fmt.Fprint(cmd.OutOrStdout(), env.renderer.Markdown(style.PlanMarkdown(report)))
			return nil
		},
	}
}

func newRestoreCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "restore [directory...]",
		Short:   MsgRestoreShort,
		Long:    MsgRestoreLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.setup(nil, opts.dryRun)
			if err != nil {
				return err
			}

			if !yes && !opts.dryRun {
				ok, err := confirm(MsgConfirmRestore, "")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
					return nil
				}
			}

			engine := restore.New(env.fs, env.cfg.Backup.Suffix, knownSidecars(env))
			report := engine.RestoreAll(restoreRoots(env, args))
			fmt.Fprint(cmd.OutOrStdout(), env.renderer.Restore(report))
			if len(report.Failed) > 0 {
				return fmt.Errorf("%d file(s) could not be restored", len(report.Failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	return cmd
}

// knownSidecars lists the backup path of every file omacustom patches,
// including every waybar config candidate.
func knownSidecars(env *environment) []string {
	suffix := env.cfg.Backup.Suffix
	seen := map[string]bool{}
	var known []string
	add := func(target string) {
		if !seen[target] {
			seen[target] = true
			known = append(known, target+suffix)
		}
	}

	for _, patch := range customize.New(env.cfg, env.paths, env.fs, env.runner).Patches() {
		add(patch.Path())
	}
	for _, candidate := range env.paths.WaybarConfigCandidates() {
		add(candidate)
	}
	return known
}

// restoreRoots picks the directories scanned for backups: arguments first,
// then the configured roots, then the XDG config and data homes.
func restoreRoots(env *environment, args []string) []string {
	roots := args
	if len(roots) == 0 {
		roots = env.cfg.Restore.Roots
	}
	if len(roots) == 0 {
		return []string{env.paths.ConfigHome(), env.paths.DataHome()}
	}
	expanded := make([]string, 0, len(roots))
	for _, root := range roots {
		expanded = append(expanded, env.paths.ExpandHome(root))
	}
	return expanded
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.setup(nil, true)
			if err != nil {
				return err
			}
			out, err := env.cfg.Marshal(format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatTOML, MsgFlagFormat)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Args:    cobra.NoArgs,
		Hidden:  true,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "OMACUSTOM",
				Section: "1",
				Source:  "omacustom " + version.Version,
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)
	return cmd
}
