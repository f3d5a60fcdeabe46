package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "alacritty", cfg.Terminal)
	assert.Equal(t, "yay", cfg.PackageManager)
	assert.Equal(t, ".original", cfg.Backup.Suffix)

	require.NotEmpty(t, cfg.Packages)
	assert.Equal(t, PackageAction{Name: "browser", Action: ActionRemove, Packages: []string{"chromium"}}, cfg.Packages[0])

	assert.True(t, cfg.Bash.Enabled)
	assert.Equal(t, "BASH CUSTOMIZATIONS", cfg.Bash.Label)
	assert.Contains(t, cfg.Bash.Lines, `export EDITOR="vi"`)
	assert.Contains(t, cfg.Hyprland.Lines, "unbind = SUPER SHIFT, X")

	assert.Equal(t, "hyprland/language", cfg.Waybar.Module.Name)
	assert.Equal(t, "HE", cfg.Waybar.Module.FormatHe)
	assert.True(t, cfg.Waybar.Module.Tooltip)
	assert.Equal(t, "WAYBAR LANGUAGE STYLING", cfg.Waybar.Style.Label)

	assert.Equal(t, "OVERRIDE_WINDOW_MGR             = None", cfg.Toshy.OverrideAnchor)
	assert.Equal(t, "  # disabled by omacustom", cfg.Toshy.DisableSuffix)

	require.Len(t, cfg.Fonts.Aliases, 3)
	assert.Equal(t, "sans-serif", cfg.Fonts.Aliases[0].Family)
	assert.Equal(t, []string{"Liberation Sans"}, cfg.Fonts.Aliases[0].Prefer)

	assert.Equal(t, "google-chrome.desktop", cfg.Browser.Desktop.File)
	assert.Contains(t, cfg.Cleanup.Dirs, "~/.config/nvim")
	assert.Equal(t, []string{"HEY", "Basecamp", "X", "x.com"}, cfg.Cleanup.WebApps)
	assert.Empty(t, cfg.Restore.Roots)
}

func TestLoad_Layering(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", `
terminal = "kitty"
package_manager = "paru"

[bash]
lines = ["alias ll='ls -l'"]

[waybar.module]
format_he = "עב"
`)

	t.Run("user file over defaults", func(t *testing.T) {
		cfg, err := Load(LoadOptions{Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, "kitty", cfg.Terminal)
		assert.Equal(t, "paru", cfg.PackageManager)
		assert.Equal(t, []string{"alias ll='ls -l'"}, cfg.Bash.Lines)
		assert.Equal(t, "BASH CUSTOMIZATIONS", cfg.Bash.Label)
		assert.Equal(t, "עב", cfg.Waybar.Module.FormatHe)
		assert.Equal(t, "EN", cfg.Waybar.Module.FormatEn)
	})

	t.Run("env over user file", func(t *testing.T) {
		t.Setenv("OMACUSTOM_TERMINAL", "foot")
		t.Setenv("OMACUSTOM_WAYBAR__MODULE__FORMAT_EN", "US")
		t.Setenv("OMACUSTOM_GIT__UNSET", "pull.rebase")

		cfg, err := Load(LoadOptions{Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, "foot", cfg.Terminal)
		assert.Equal(t, "US", cfg.Waybar.Module.FormatEn)
		assert.Equal(t, []string{"pull.rebase"}, cfg.Git.Unset)
		assert.Equal(t, "paru", cfg.PackageManager)
	})

	t.Run("overrides win", func(t *testing.T) {
		t.Setenv("OMACUSTOM_TERMINAL", "foot")

		cfg, err := Load(LoadOptions{Dir: dir, Overrides: map[string]interface{}{"terminal": "ghostty"}})
		require.NoError(t, err)
		assert.Equal(t, "ghostty", cfg.Terminal)
	})
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", `
terminal: wezterm
toshy:
  enabled: false
`)

	cfg, err := Load(LoadOptions{File: path})
	require.NoError(t, err)
	assert.Equal(t, "wezterm", cfg.Terminal)
	assert.False(t, cfg.Toshy.Enabled)
	assert.NotEmpty(t, cfg.Toshy.SliceStart)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("malformed file", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.toml", "terminal = \n[[")
		_, err := Load(LoadOptions{File: path})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.toml", `terminal = " "`)
		_, err := Load(LoadOptions{File: path})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("unknown package action", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.toml", `
[[packages]]
name = "x"
action = "upgrade"
packages = ["y"]
`)
		_, err := Load(LoadOptions{File: path})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestConfig_Marshal(t *testing.T) {
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	out, err := cfg.Marshal(FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "terminal = 'alacritty'")

	out, err = cfg.Marshal(FormatYAML)
	require.NoError(t, err)
	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg.Terminal, back.Terminal)
	assert.Equal(t, cfg.Waybar.Module, back.Waybar.Module)

	_, err = cfg.Marshal("json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDefaultsContent(t *testing.T) {
	assert.True(t, strings.HasPrefix(DefaultsContent(), "# omacustom defaults"))
}
