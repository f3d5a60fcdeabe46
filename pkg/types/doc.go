// Package types defines the interfaces shared across omacustom packages.
// The FS interface lets every patcher run against the real filesystem, an
// in-memory filesystem in tests, or a copy-on-write overlay in dry-run mode.
package types
