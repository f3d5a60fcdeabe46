// Package merge applies structural edits to configuration files that have a
// real syntax: the Waybar JSON-with-comments config and the fontconfig XML
// file.
//
// Both edits are lossy by design of the formats involved: the JSONC document
// is regenerated from its parsed form, so comments are dropped and a single
// provenance comment is written at the top. Key order is kept.
package merge
