// Package customize runs one full personalization pass: package changes,
// cleanup of leftovers, desktop entries, the configuration file patches
// and the final system settings. Steps run in a fixed order and a failing
// step never stops the ones after it.
package customize
