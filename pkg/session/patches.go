package session

import (
	"strings"

	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/omarchy-fork/omacustom/pkg/fence"
	"github.com/omarchy-fork/omacustom/pkg/merge"
	"github.com/omarchy-fork/omacustom/pkg/splice"
	"github.com/omarchy-fork/omacustom/pkg/types"
)

// FencePatch appends a labeled block to a line or CSS file
type FencePatch struct {
	Label  string
	Target string
	Lines  []string
	// Create allows the file to be created when it does not exist
	Create bool
}

func (p FencePatch) Name() string    { return p.Label }
func (p FencePatch) Path() string    { return p.Target }
func (p FencePatch) MustExist() bool { return !p.Create }

func (p FencePatch) Apply(fsys types.FS) (Change, error) {
	result, err := fence.New(fsys).Append(p.Target, p.Label, p.Lines)
	if err != nil {
		return Change{}, err
	}
	return Change{Modified: result == fence.Added, Detail: result.String()}, nil
}

// SplicePatch edits a marker-scripted file. Each of the three edits is
// optional and they are applied in the order slice, substitutions,
// override.
type SplicePatch struct {
	Label         string
	Target        string
	Slice         *splice.Slice
	Substitutions []splice.Substitution
	Override      *splice.Override
}

func (p SplicePatch) Name() string    { return p.Label }
func (p SplicePatch) Path() string    { return p.Target }
func (p SplicePatch) MustExist() bool { return true }

func (p SplicePatch) Apply(fsys types.FS) (Change, error) {
	s := splice.New(fsys)
	var (
		modified bool
		present  bool
		details  []string
		missing  []string
	)

	if p.Slice != nil {
		result, err := s.SpliceOnce(p.Target, *p.Slice)
		if err != nil {
			return Change{}, err
		}
		switch result {
		case splice.Inserted:
			modified = true
			details = append(details, "slice inserted")
		case splice.AlreadyPresent:
			present = true
		case splice.MarkersNotFound:
			missing = append(missing, "slice markers")
		}
	}

	if len(p.Substitutions) > 0 {
		n, err := s.SubstituteLines(p.Target, p.Substitutions)
		if err != nil {
			return Change{}, err
		}
		if n > 0 {
			modified = true
			details = append(details, "lines disabled")
		}
	}

	if p.Override != nil {
		result, err := s.Override(p.Target, *p.Override)
		if err != nil {
			return Change{}, err
		}
		switch result {
		case splice.Inserted:
			modified = true
			details = append(details, "override inserted")
		case splice.AlreadyPresent:
			present = true
		case splice.MarkersNotFound:
			missing = append(missing, "override anchor")
		}
	}

	// Only an edit that is neither made nor already in place is an absence
	if len(missing) > 0 && !modified && !present {
		return Change{}, errors.Newf(errors.ErrMarkerAbsent, "%s not found", strings.Join(missing, " and ")).
			WithDetail("path", p.Target)
	}
	if len(missing) > 0 {
		details = append(details, strings.Join(missing, " and ")+" not found")
	}
	return Change{Modified: modified, Detail: strings.Join(details, ", ")}, nil
}

// JSONMergePatch adds the language module to a Waybar config
type JSONMergePatch struct {
	Label  string
	Target string
	Module merge.LanguageModule
}

func (p JSONMergePatch) Name() string    { return p.Label }
func (p JSONMergePatch) Path() string    { return p.Target }
func (p JSONMergePatch) MustExist() bool { return true }

func (p JSONMergePatch) Apply(fsys types.FS) (Change, error) {
	result, err := merge.New(fsys).MergeLanguageModule(p.Target, p.Module)
	if err != nil {
		return Change{}, err
	}
	return Change{Modified: result == merge.Merged, Detail: result.String()}, nil
}

// FontAliasPatch makes fontconfig prefer the configured fonts
type FontAliasPatch struct {
	Label   string
	Target  string
	Aliases []merge.FontAlias
}

func (p FontAliasPatch) Name() string    { return p.Label }
func (p FontAliasPatch) Path() string    { return p.Target }
func (p FontAliasPatch) MustExist() bool { return false }

func (p FontAliasPatch) Apply(fsys types.FS) (Change, error) {
	result, err := merge.New(fsys).EnsureFontAlias(p.Target, p.Aliases...)
	if err != nil {
		return Change{}, err
	}
	return Change{Modified: result == merge.Merged, Detail: result.String()}, nil
}
