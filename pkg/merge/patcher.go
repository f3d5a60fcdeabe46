package merge

import (
	"os"
	"path/filepath"

	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/omarchy-fork/omacustom/pkg/logging"
	"github.com/omarchy-fork/omacustom/pkg/types"
	"github.com/rs/zerolog"
)

// Patcher applies structural merges to files
type Patcher struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Patcher
func New(fs types.FS) *Patcher {
	return &Patcher{
		fs:     fs,
		logger: logging.GetLogger("merge"),
	}
}

// MergeLanguageModule adds module to the Waybar config at path. The file
// must exist; on any failure it is left untouched.
func (p *Patcher) MergeLanguageModule(path string, module LanguageModule) (Result, error) {
	info, err := p.fs.Stat(path)
	if err != nil {
		return Merged, errors.WrapIO(err, "stat", path)
	}
	raw, err := p.fs.ReadFile(path)
	if err != nil {
		return Merged, errors.WrapIO(err, "read", path)
	}

	out, result, err := MergeDocument(raw, path, module)
	if err != nil {
		p.logger.Error().Err(err).Str("path", path).Msg("Cannot merge language module")
		return result, err
	}
	if result == AlreadyConfigured {
		p.logger.Debug().Str("path", path).Str("module", module.Name).Msg("Module already configured")
		return result, nil
	}

	if err := p.fs.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return result, errors.WrapIO(err, "write", path)
	}
	p.logger.Info().Str("path", path).Str("module", module.Name).Msg("Merged language module")
	return Merged, nil
}

// EnsureFontAlias adds the aliases to the fontconfig file at path,
// creating the file when it does not exist.
func (p *Patcher) EnsureFontAlias(path string, aliases ...FontAlias) (Result, error) {
	raw, err := p.fs.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err):
		raw = nil
	default:
		return Merged, errors.WrapIO(err, "read", path)
	}

	out, result, err := MergeFontAliases(raw, aliases)
	if err != nil {
		p.logger.Error().Err(err).Str("path", path).Msg("Cannot merge font aliases")
		return result, err
	}
	if result == AlreadyConfigured {
		p.logger.Debug().Str("path", path).Msg("Font aliases already configured")
		return result, nil
	}

	if err := p.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return result, errors.WrapIO(err, "mkdir", filepath.Dir(path))
	}
	if err := p.fs.WriteFile(path, out, 0644); err != nil {
		return result, errors.WrapIO(err, "write", path)
	}
	p.logger.Info().Str("path", path).Int("aliases", len(aliases)).Msg("Updated font aliases")
	return Merged, nil
}
