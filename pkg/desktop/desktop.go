// Package desktop manages .desktop launcher files in the user's
// applications directory.
package desktop

import (
	"bytes"
	_ "embed"
	"path/filepath"
	"text/template"

	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/omarchy-fork/omacustom/pkg/logging"
	"github.com/omarchy-fork/omacustom/pkg/types"
	"github.com/rs/zerolog"
)

//go:embed templates/browser.desktop.tmpl
var browserTemplate string

var browserEntry = template.Must(template.New("browser.desktop").Parse(browserTemplate))

// Browser describes the launcher written for the default browser
type Browser struct {
	// File is the desktop file name, e.g. google-chrome.desktop
	File  string `koanf:"desktop_file" toml:"desktop_file" yaml:"desktop_file"`
	Name  string `koanf:"name" toml:"name" yaml:"name"`
	Exec  string `koanf:"exec" toml:"exec" yaml:"exec"`
	Flags string `koanf:"flags" toml:"flags" yaml:"flags"`
	Icon  string `koanf:"icon" toml:"icon" yaml:"icon"`
}

// Render returns the desktop entry text for b
func (b Browser) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := browserEntry.Execute(&buf, b); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot render desktop entry")
	}
	return buf.Bytes(), nil
}

// Writer creates and removes desktop files in one directory
type Writer struct {
	fs     types.FS
	dir    string
	logger zerolog.Logger
}

// NewWriter creates a Writer for the applications directory dir
func NewWriter(fs types.FS, dir string) *Writer {
	return &Writer{
		fs:     fs,
		dir:    dir,
		logger: logging.GetLogger("desktop"),
	}
}

// WriteBrowser writes the browser launcher, replacing any existing file.
// It returns the path written.
func (w *Writer) WriteBrowser(b Browser) (string, error) {
	content, err := b.Render()
	if err != nil {
		return "", err
	}
	if err := w.fs.MkdirAll(w.dir, 0755); err != nil {
		return "", errors.WrapIO(err, "mkdir", w.dir)
	}

	path := filepath.Join(w.dir, b.File)
	if err := w.fs.WriteFile(path, content, 0644); err != nil {
		return "", errors.WrapIO(err, "write", path)
	}
	w.logger.Info().Str("path", path).Msg("Wrote browser desktop entry")
	return path, nil
}

// Remove deletes the named desktop files that exist and returns the names
// actually removed. Failures are logged and do not stop the loop.
func (w *Writer) Remove(names []string) []string {
	var removed []string
	for _, name := range names {
		path := filepath.Join(w.dir, name)
		if _, err := w.fs.Lstat(path); err != nil {
			continue
		}
		if err := w.fs.Remove(path); err != nil {
			w.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove desktop file")
			continue
		}
		w.logger.Info().Str("file", name).Msg("Removed desktop file")
		removed = append(removed, name)
	}
	return removed
}
