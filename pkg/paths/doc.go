// Package paths provides centralized path handling for omacustom.
// It resolves the XDG base directories and the location of every user
// and system configuration file the customization run touches.
package paths
