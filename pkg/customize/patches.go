package customize

import (
	"github.com/omarchy-fork/omacustom/pkg/config"
	"github.com/omarchy-fork/omacustom/pkg/filesystem"
	"github.com/omarchy-fork/omacustom/pkg/session"
	"github.com/omarchy-fork/omacustom/pkg/splice"
)

// Patches returns the enabled file patches in the order they are applied:
// bash, hyprland, hypridle, waybar config, waybar style, toshy, keyd,
// fontconfig.
func (c *Customizer) Patches() []session.Patch {
	cfg := c.cfg
	var patches []session.Patch

	fenced := func(b config.Block, target string, create bool) {
		if b.Enabled && len(b.Lines) > 0 {
			patches = append(patches, session.FencePatch{Label: b.Label, Target: target, Lines: b.Lines, Create: create})
		}
	}

	fenced(cfg.Bash, c.paths.Bashrc(), true)
	fenced(cfg.Hyprland, c.paths.HyprlandConf(), false)
	fenced(cfg.Hypridle, c.paths.HypridleConf(), false)

	if cfg.Waybar.Enabled {
		patches = append(patches, session.JSONMergePatch{
			Label:  "WAYBAR LANGUAGE MODULE",
			Target: c.waybarConfig(),
			Module: cfg.Waybar.Module,
		})
		fenced(cfg.Waybar.Style, c.paths.WaybarStyle(), false)
	}

	if cfg.Toshy.Enabled {
		patches = append(patches, c.toshyPatch())
	}

	fenced(cfg.Keyd, c.paths.KeydConfig(), false)

	if cfg.Fonts.Enabled && len(cfg.Fonts.Aliases) > 0 {
		patches = append(patches, session.FontAliasPatch{
			Label:   cfg.Fonts.Label,
			Target:  c.paths.FontconfigConf(),
			Aliases: cfg.Fonts.Aliases,
		})
	}
	return patches
}

// waybarConfig picks the first existing config candidate. When none
// exists the first candidate is returned and the session skips it.
func (c *Customizer) waybarConfig() string {
	candidates := c.paths.WaybarConfigCandidates()
	for _, path := range candidates {
		if filesystem.Exists(c.fs, path) {
			return path
		}
	}
	return candidates[0]
}

func (c *Customizer) toshyPatch() session.SplicePatch {
	t := c.cfg.Toshy
	patch := session.SplicePatch{
		Label:  t.Label,
		Target: c.paths.ToshyConfig(),
		Slice: &splice.Slice{
			Start:     t.SliceStart,
			End:       t.SliceEnd,
			Signature: splice.KeymapSignature,
			Label:     t.Label,
			Lines:     splice.TerminalKeymap(c.cfg.Terminal),
		},
	}
	for _, line := range t.Disable {
		patch.Substitutions = append(patch.Substitutions, splice.CommentOut(line, t.DisableSuffix))
	}
	if t.OverrideAnchor != "" && t.OverrideLine != "" {
		patch.Override = &splice.Override{Anchor: t.OverrideAnchor, Line: t.OverrideLine}
	}
	return patch
}
