// Package testutil provides shared helpers for omacustom tests: an
// in-memory filesystem, a filesystem wrapper that injects failures for
// chosen paths, and small read/write helpers that fail the test on error.
package testutil
