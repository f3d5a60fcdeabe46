// Package config handles configuration management for omacustom.
// It layers the embedded defaults, an optional user file (TOML or YAML),
// OMACUSTOM_ environment variables and command-line flags, in that order.
package config
