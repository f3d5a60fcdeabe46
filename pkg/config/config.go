package config

import (
	"github.com/omarchy-fork/omacustom/pkg/desktop"
	"github.com/omarchy-fork/omacustom/pkg/merge"
)

// Config is the effective configuration of one omacustom run
type Config struct {
	// Terminal is the terminal program bound in the Toshy keymap
	Terminal       string `koanf:"terminal" toml:"terminal" yaml:"terminal"`
	PackageManager string `koanf:"package_manager" toml:"package_manager" yaml:"package_manager"`

	Backup   Backup          `koanf:"backup" toml:"backup" yaml:"backup"`
	Packages []PackageAction `koanf:"packages" toml:"packages" yaml:"packages"`
	Browser  Browser         `koanf:"browser" toml:"browser" yaml:"browser"`
	Cleanup  Cleanup         `koanf:"cleanup" toml:"cleanup" yaml:"cleanup"`
	Git      Git             `koanf:"git" toml:"git" yaml:"git"`

	Bash     Block  `koanf:"bash" toml:"bash" yaml:"bash"`
	Hyprland Block  `koanf:"hyprland" toml:"hyprland" yaml:"hyprland"`
	Hypridle Block  `koanf:"hypridle" toml:"hypridle" yaml:"hypridle"`
	Keyd     Block  `koanf:"keyd" toml:"keyd" yaml:"keyd"`
	Waybar   Waybar `koanf:"waybar" toml:"waybar" yaml:"waybar"`
	Toshy    Toshy  `koanf:"toshy" toml:"toshy" yaml:"toshy"`
	Fonts    Fonts  `koanf:"fonts" toml:"fonts" yaml:"fonts"`

	Restore Restore `koanf:"restore" toml:"restore" yaml:"restore"`
}

// Backup configures sidecar files
type Backup struct {
	Suffix string `koanf:"suffix" toml:"suffix" yaml:"suffix"`
}

// PackageAction installs or removes a group of packages
type PackageAction struct {
	// Name labels the group in logs and the summary
	Name     string   `koanf:"name" toml:"name" yaml:"name"`
	Action   string   `koanf:"action" toml:"action" yaml:"action"`
	Packages []string `koanf:"packages" toml:"packages" yaml:"packages"`
}

// Package actions
const (
	ActionInstall = "install"
	ActionRemove  = "remove"
)

// Browser configures the browser switch
type Browser struct {
	Desktop desktop.Browser `koanf:"desktop" toml:"desktop" yaml:"desktop"`
	// Symlink makes this path launch Desktop.Exec
	Symlink string `koanf:"symlink" toml:"symlink" yaml:"symlink"`
	// Default is the desktop file registered as default web browser
	Default string `koanf:"default" toml:"default" yaml:"default"`
}

// Cleanup lists leftovers to delete. Paths may start with ~.
type Cleanup struct {
	Dirs         []string `koanf:"dirs" toml:"dirs" yaml:"dirs"`
	SystemFiles  []string `koanf:"system_files" toml:"system_files" yaml:"system_files"`
	DesktopFiles []string `koanf:"desktop_files" toml:"desktop_files" yaml:"desktop_files"`
	WebApps      []string `koanf:"web_apps" toml:"web_apps" yaml:"web_apps"`
}

// Git lists global git settings to unset
type Git struct {
	Unset []string `koanf:"unset" toml:"unset" yaml:"unset"`
}

// Block is a fenced block appended to a file
type Block struct {
	Enabled bool     `koanf:"enabled" toml:"enabled" yaml:"enabled"`
	Label   string   `koanf:"label" toml:"label" yaml:"label"`
	Lines   []string `koanf:"lines" toml:"lines" yaml:"lines"`
}

// Waybar configures the status bar patches
type Waybar struct {
	Enabled bool                 `koanf:"enabled" toml:"enabled" yaml:"enabled"`
	Module  merge.LanguageModule `koanf:"module" toml:"module" yaml:"module"`
	Style   Block                `koanf:"style" toml:"style" yaml:"style"`
}

// Toshy configures the keymapper patch
type Toshy struct {
	Enabled    bool   `koanf:"enabled" toml:"enabled" yaml:"enabled"`
	Label      string `koanf:"label" toml:"label" yaml:"label"`
	SliceStart string `koanf:"slice_start" toml:"slice_start" yaml:"slice_start"`
	SliceEnd   string `koanf:"slice_end" toml:"slice_end" yaml:"slice_end"`
	// Disable lists lines to comment out, matched exactly
	Disable        []string `koanf:"disable" toml:"disable" yaml:"disable"`
	DisableSuffix  string   `koanf:"disable_suffix" toml:"disable_suffix" yaml:"disable_suffix"`
	OverrideAnchor string   `koanf:"override_anchor" toml:"override_anchor" yaml:"override_anchor"`
	OverrideLine   string   `koanf:"override_line" toml:"override_line" yaml:"override_line"`
}

// Fonts configures the fontconfig patch
type Fonts struct {
	Enabled bool              `koanf:"enabled" toml:"enabled" yaml:"enabled"`
	Label   string            `koanf:"label" toml:"label" yaml:"label"`
	Aliases []merge.FontAlias `koanf:"aliases" toml:"aliases" yaml:"aliases"`
}

// Restore configures the restore command
type Restore struct {
	// Roots are scanned recursively for sidecars. Empty means the XDG
	// config and data homes.
	Roots []string `koanf:"roots" toml:"roots" yaml:"roots"`
}
