// Package splice edits script-like configuration files that carry fixed
// sentinel lines, such as the slice marks in the Toshy keymapper config.
//
// Three edits are supported, each safe to repeat:
//   - Splice inserts a labeled block between a start and end marker unless
//     a signature substring already appears between them.
//   - Substitute rewrites known lines by exact match. A rewritten line no
//     longer matches, so a second run leaves it alone.
//   - InsertAfterAnchor adds a single settings line after an anchor line
//     unless the settings line is already present.
package splice

import (
	"os"
	"strings"

	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/omarchy-fork/omacustom/pkg/fence"
	"github.com/omarchy-fork/omacustom/pkg/logging"
	"github.com/omarchy-fork/omacustom/pkg/types"
	"github.com/rs/zerolog"
)

// Result describes the effect of a splice or anchored insertion
type Result int

const (
	// Inserted means new text was written
	Inserted Result = iota
	// AlreadyPresent means the signature was found and nothing changed
	AlreadyPresent
	// MarkersNotFound means a marker or anchor is missing; nothing changed
	MarkersNotFound
)

func (r Result) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case AlreadyPresent:
		return "already-present"
	case MarkersNotFound:
		return "markers-not-found"
	default:
		return "unknown"
	}
}

// Slice describes one marker-delimited insertion
type Slice struct {
	Start     string
	End       string
	Signature string
	Label     string
	Lines     []string
}

// Substitution replaces a whole line equal to Old with New
type Substitution struct {
	Old string
	New string
}

// Override inserts Line after the line equal to Anchor
type Override struct {
	Anchor string
	Line   string
}

// CommentOut builds a Substitution that disables line, keeping its
// indentation and tagging it with suffix.
func CommentOut(line, suffix string) Substitution {
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	return Substitution{Old: line, New: indent + "# " + trimmed + suffix}
}

// Splice inserts the slice's labeled block after the line holding the
// first Start marker. Only the text strictly between that marker and the
// first End marker after it is searched for Signature.
func Splice(content string, s Slice) (string, Result) {
	i := strings.Index(content, s.Start)
	if s.Start == "" || i < 0 {
		return content, MarkersNotFound
	}
	afterStart := i + len(s.Start)

	j := strings.Index(content[afterStart:], s.End)
	if s.End == "" || j < 0 {
		return content, MarkersNotFound
	}
	endAt := afterStart + j

	if strings.Contains(content[afterStart:endAt], s.Signature) {
		return content, AlreadyPresent
	}

	insertAt := afterStart
	if nl := strings.IndexByte(content[afterStart:endAt], '\n'); nl >= 0 {
		insertAt = afterStart + nl
	}

	block := strings.TrimSuffix(fence.Render(s.Label, s.Lines, fence.LineComment), "\n")
	return content[:insertAt] + "\n" + block + content[insertAt:], Inserted
}

// Substitute applies every substitution by exact whole-line match and
// returns the new content and the number of lines rewritten.
func Substitute(content string, subs []Substitution) (string, int) {
	if len(subs) == 0 {
		return content, 0
	}
	lookup := make(map[string]string, len(subs))
	for _, s := range subs {
		lookup[s.Old] = s.New
	}

	lines := strings.Split(content, "\n")
	changed := 0
	for i, line := range lines {
		if repl, ok := lookup[line]; ok {
			lines[i] = repl
			changed++
		}
	}
	return strings.Join(lines, "\n"), changed
}

// InsertAfterAnchor places o.Line on its own line directly after the first
// line equal to o.Anchor, reusing the anchor's indentation.
func InsertAfterAnchor(content string, o Override) (string, Result) {
	if strings.Contains(content, strings.TrimSpace(o.Line)) {
		return content, AlreadyPresent
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line != o.Anchor {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		out := make([]string, 0, len(lines)+1)
		out = append(out, lines[:i+1]...)
		out = append(out, indent+strings.TrimSpace(o.Line))
		out = append(out, lines[i+1:]...)
		return strings.Join(out, "\n"), Inserted
	}
	return content, MarkersNotFound
}

// Splicer applies splice edits to files
type Splicer struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Splicer
func New(fs types.FS) *Splicer {
	return &Splicer{
		fs:     fs,
		logger: logging.GetLogger("splice"),
	}
}

// SpliceOnce applies Splice to the file at path
func (s *Splicer) SpliceOnce(path string, slice Slice) (Result, error) {
	content, mode, err := s.read(path)
	if err != nil {
		return MarkersNotFound, err
	}

	updated, result := Splice(content, slice)
	switch result {
	case MarkersNotFound:
		s.logger.Warn().Str("path", path).Str("start", slice.Start).Msg("Slice markers not found, skipping")
		return result, nil
	case AlreadyPresent:
		s.logger.Debug().Str("path", path).Str("signature", slice.Signature).Msg("Slice already customized")
		return result, nil
	}

	if err := s.fs.WriteFile(path, []byte(updated), mode); err != nil {
		return result, errors.WrapIO(err, "write", path)
	}
	s.logger.Info().Str("path", path).Str("label", slice.Label).Msg("Spliced block into slice")
	return Inserted, nil
}

// SubstituteLines applies Substitute to the file at path and returns how
// many lines changed. Unmatched lines are not an error.
func (s *Splicer) SubstituteLines(path string, subs []Substitution) (int, error) {
	content, mode, err := s.read(path)
	if err != nil {
		return 0, err
	}

	updated, changed := Substitute(content, subs)
	if changed == 0 {
		s.logger.Debug().Str("path", path).Msg("No lines matched for substitution")
		return 0, nil
	}

	if err := s.fs.WriteFile(path, []byte(updated), mode); err != nil {
		return 0, errors.WrapIO(err, "write", path)
	}
	s.logger.Info().Str("path", path).Int("lines", changed).Msg("Rewrote lines")
	return changed, nil
}

// Override applies InsertAfterAnchor to the file at path
func (s *Splicer) Override(path string, o Override) (Result, error) {
	content, mode, err := s.read(path)
	if err != nil {
		return MarkersNotFound, err
	}

	updated, result := InsertAfterAnchor(content, o)
	if result != Inserted {
		s.logger.Debug().Str("path", path).Str("result", result.String()).Msg("Override not inserted")
		return result, nil
	}

	if err := s.fs.WriteFile(path, []byte(updated), mode); err != nil {
		return result, errors.WrapIO(err, "write", path)
	}
	s.logger.Info().Str("path", path).Str("line", o.Line).Msg("Inserted override")
	return Inserted, nil
}

func (s *Splicer) read(path string) (string, os.FileMode, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return "", 0, errors.WrapIO(err, "stat", path)
	}
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return "", 0, errors.WrapIO(err, "read", path)
	}
	return string(data), info.Mode().Perm(), nil
}
