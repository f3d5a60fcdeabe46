// Package fence renders and detects labeled blocks of text wrapped in
// comment delimiters, and appends them to configuration files at most once.
//
// A block is considered present when both its start and end delimiter
// occur anywhere in the file. Order and nesting are not checked, and the
// block's content plays no part: a block is identified by its label alone.
package fence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/omarchy-fork/omacustom/pkg/logging"
	"github.com/omarchy-fork/omacustom/pkg/types"
	"github.com/rs/zerolog"
)

// Kind selects the comment syntax used for delimiters
type Kind int

const (
	// LineComment uses "# === START <label> ===" delimiters
	LineComment Kind = iota
	// BlockComment uses "/* === START <label> === */" delimiters
	BlockComment
)

func (k Kind) String() string {
	if k == BlockComment {
		return "block-comment"
	}
	return "line-comment"
}

// KindFor derives the delimiter style from the file extension
func KindFor(path string) Kind {
	if strings.EqualFold(filepath.Ext(path), ".css") {
		return BlockComment
	}
	return LineComment
}

// StartDelimiter returns the opening delimiter line for label
func StartDelimiter(label string, kind Kind) string {
	return delimiter("START", label, kind)
}

// EndDelimiter returns the closing delimiter line for label
func EndDelimiter(label string, kind Kind) string {
	return delimiter("END", label, kind)
}

func delimiter(edge, label string, kind Kind) string {
	if kind == BlockComment {
		return fmt.Sprintf("/* === %s %s === */", edge, label)
	}
	return fmt.Sprintf("# === %s %s ===", edge, label)
}

// HasBlock reports whether both delimiters for label occur in content
func HasBlock(content, label string, kind Kind) bool {
	return strings.Contains(content, StartDelimiter(label, kind)) &&
		strings.Contains(content, EndDelimiter(label, kind))
}

// Render produces the start delimiter, each line, then the end delimiter,
// each terminated by a newline.
func Render(label string, lines []string, kind Kind) string {
	var b strings.Builder
	b.WriteString(StartDelimiter(label, kind))
	b.WriteByte('\n')
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(EndDelimiter(label, kind))
	b.WriteByte('\n')
	return b.String()
}

// Result describes the effect of Append
type Result int

const (
	// Added means the block was appended
	Added Result = iota
	// AlreadyPresent means a block with the same label was found
	AlreadyPresent
)

func (r Result) String() string {
	if r == AlreadyPresent {
		return "already-present"
	}
	return "added"
}

// Codec appends fenced blocks to files
type Codec struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Codec
func New(fs types.FS) *Codec {
	return &Codec{
		fs:     fs,
		logger: logging.GetLogger("fence"),
	}
}

// Append adds the labeled block to the end of path unless it is already
// there. The file (and its directory) is created when missing. Existing
// content is never rewritten.
func (c *Codec) Append(path, label string, lines []string) (Result, error) {
	kind := KindFor(path)

	content := ""
	data, err := c.fs.ReadFile(path)
	switch {
	case err == nil:
		content = string(data)
	case os.IsNotExist(err):
		// created below
	default:
		return Added, errors.WrapIO(err, "read", path)
	}

	if HasBlock(content, label, kind) {
		c.logger.Debug().Str("path", path).Str("label", label).Msg("Block already present")
		return AlreadyPresent, nil
	}

	if err := c.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Added, errors.WrapIO(err, "create directory for", path)
	}
	if err := c.fs.AppendFile(path, []byte("\n"+Render(label, lines, kind)), 0644); err != nil {
		return Added, errors.WrapIO(err, "append to", path)
	}

	c.logger.Info().
		Str("path", path).
		Str("label", label).
		Str("kind", kind.String()).
		Int("lines", len(lines)).
		Msg("Appended block")
	return Added, nil
}
