package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/omarchy-fork/omacustom/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for omacustom
	EnvConfigDir = "OMACUSTOM_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for omacustom
	EnvStateDir = "OMACUSTOM_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for omacustom-specific files
	AppDirName = "omacustom"

	// LogFileName is the name of the log file
	LogFileName = "omacustom.log"
)

// Paths provides centralized path management for omacustom
type Paths interface {
	HomeDir() string
	ConfigHome() string
	DataHome() string
	ConfigDir() string
	StateDir() string
	LogFilePath() string
	ApplicationsDir() string

	Bashrc() string
	HyprlandConf() string
	HypridleConf() string
	WaybarConfigCandidates() []string
	WaybarStyle() string
	ToshyConfig() string
	FontconfigConf() string
	KeydConfig() string

	// SystemPath maps an absolute system path (e.g. /etc/keyd) under the
	// configured system root.
	SystemPath(path string) string
	ExpandHome(path string) string
}

type paths struct {
	home       string
	configHome string
	dataHome   string
	stateHome  string
	systemRoot string
}

// New creates a Paths instance. An empty home resolves the current user's
// home directory and the XDG base directories from the environment; an
// explicit home derives every location beneath it. An empty systemRoot
// means "/".
func New(home, systemRoot string) (Paths, error) {
	p := &paths{systemRoot: systemRoot}
	if p.systemRoot == "" {
		p.systemRoot = "/"
	}

	if home == "" {
		h, err := GetHomeDirectory()
		if err != nil {
			return nil, err
		}
		p.home = h
		p.configHome = xdg.ConfigHome
		p.dataHome = xdg.DataHome
		p.stateHome = xdg.StateHome
	} else {
		abs, err := filepath.Abs(home)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to get absolute path for home %s", home)
		}
		p.home = abs
		p.configHome = filepath.Join(abs, ".config")
		p.dataHome = filepath.Join(abs, ".local", "share")
		p.stateHome = filepath.Join(abs, ".local", "state")
	}

	return p, nil
}

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrIO, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

func (p *paths) HomeDir() string    { return p.home }
func (p *paths) ConfigHome() string { return p.configHome }
func (p *paths) DataHome() string   { return p.dataHome }

// ConfigDir returns the directory holding omacustom's own configuration
func (p *paths) ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return p.ExpandHome(dir)
	}
	return filepath.Join(p.configHome, AppDirName)
}

// StateDir returns the directory holding omacustom's log
func (p *paths) StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return p.ExpandHome(dir)
	}
	return filepath.Join(p.stateHome, AppDirName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.StateDir(), LogFileName)
}

// ApplicationsDir is the user's desktop-entry directory
func (p *paths) ApplicationsDir() string {
	return filepath.Join(p.dataHome, "applications")
}

func (p *paths) Bashrc() string {
	return filepath.Join(p.home, ".bashrc")
}

func (p *paths) HyprlandConf() string {
	return filepath.Join(p.configHome, "hypr", "hyprland.conf")
}

func (p *paths) HypridleConf() string {
	return filepath.Join(p.configHome, "hypr", "hypridle.conf")
}

// WaybarConfigCandidates lists the status-bar config locations in lookup
// order; waybar reads the first one that exists.
func (p *paths) WaybarConfigCandidates() []string {
	dir := filepath.Join(p.configHome, "waybar")
	return []string{
		filepath.Join(dir, "config.jsonc"),
		filepath.Join(dir, "config"),
		filepath.Join(dir, "config.json"),
	}
}

func (p *paths) WaybarStyle() string {
	return filepath.Join(p.configHome, "waybar", "style.css")
}

func (p *paths) ToshyConfig() string {
	return filepath.Join(p.configHome, "toshy", "toshy_config.py")
}

func (p *paths) FontconfigConf() string {
	return filepath.Join(p.configHome, "fontconfig", "fonts.conf")
}

func (p *paths) KeydConfig() string {
	return p.SystemPath("/etc/keyd/default.conf")
}

func (p *paths) SystemPath(path string) string {
	if p.systemRoot == "/" {
		return path
	}
	return filepath.Join(p.systemRoot, path)
}

// ExpandHome expands a leading ~ to the configured home directory
func (p *paths) ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		return p.home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(p.home, path[2:])
	}
	// ~something (not the user's home)
	return path
}
