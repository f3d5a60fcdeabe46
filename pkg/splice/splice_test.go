package splice

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/omarchy-fork/omacustom/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	startMark = "###  SLICE_MARK_START: user_apps  ###  EDITS OUTSIDE THESE MARKS WILL BE LOST ON UPGRADE"
	endMark   = "###  SLICE_MARK_END: user_apps  ###  EDITS OUTSIDE THESE MARKS WILL BE LOST ON UPGRADE"
)

func toshySlice() Slice {
	return Slice{
		Start:     startMark,
		End:       endMark,
		Signature: KeymapSignature,
		Label:     "OMARCHY TOSHY CUSTOMIZATIONS",
		Lines:     TerminalKeymap("alacritty"),
	}
}

func toshyConfig(inside string) string {
	return "import os\n\n" + startMark + "\n" + inside + endMark + "\n\nkeymap(\"General GUI\", {})\n"
}

func TestSplice_InsertsAfterStartMarker(t *testing.T) {
	content := toshyConfig("\n")

	out, result := Splice(content, toshySlice())
	require.Equal(t, Inserted, result)

	startAt := strings.Index(out, startMark)
	blockAt := strings.Index(out, "# === START OMARCHY TOSHY CUSTOMIZATIONS ===")
	endAt := strings.Index(out, endMark)
	assert.True(t, startAt < blockAt && blockAt < endAt)
	assert.Contains(t, out, startMark+"\n# === START OMARCHY TOSHY CUSTOMIZATIONS ===\n")
	assert.Contains(t, out, "# === END OMARCHY TOSHY CUSTOMIZATIONS ===\n\n"+endMark)
	assert.Contains(t, out, `launch(["alacritty"])`)
	assert.True(t, strings.HasSuffix(out, "keymap(\"General GUI\", {})\n"))
}

func TestSplice_Idempotent(t *testing.T) {
	once, result := Splice(toshyConfig("\n"), toshySlice())
	require.Equal(t, Inserted, result)

	twice, result := Splice(once, toshySlice())
	assert.Equal(t, AlreadyPresent, result)
	assert.Equal(t, once, twice)
}

func TestSplice_SignatureOutsideSliceIsIgnored(t *testing.T) {
	content := "keymap(\"Omacustom elsewhere\", {})\n" + toshyConfig("\n")

	out, result := Splice(content, toshySlice())
	assert.Equal(t, Inserted, result)
	assert.Equal(t, 3, strings.Count(out, KeymapSignature))
}

func TestSplice_MarkersNotFound(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no markers", "import os\nkeymap(\"General GUI\", {})\n"},
		{"start only", startMark + "\nstuff\n"},
		{"end before start", endMark + "\n" + startMark + "\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, result := Splice(tt.content, toshySlice())
			assert.Equal(t, MarkersNotFound, result)
			assert.Equal(t, tt.content, out)
		})
	}
}

func TestSubstitute(t *testing.T) {
	line := `    C("RC-Space"):              Key.LEFT_META,`
	other := `    C("RC-Tab"):                C("Alt-Tab"),`
	content := "keymap(\"x\", {\n" + line + "\n" + other + "\n})\n"
	subs := []Substitution{CommentOut(line, "  # disabled by omacustom")}

	out, changed := Substitute(content, subs)
	assert.Equal(t, 1, changed)
	assert.Contains(t, out, `    # C("RC-Space"):              Key.LEFT_META,  # disabled by omacustom`)
	assert.Contains(t, out, other)

	again, changed := Substitute(out, subs)
	assert.Equal(t, 0, changed)
	assert.Equal(t, out, again)
}

func TestSubstitute_PartialMatchIsIgnored(t *testing.T) {
	content := "  foo = 1  \n"
	out, changed := Substitute(content, []Substitution{{Old: "foo = 1", New: "# foo = 1"}})
	assert.Equal(t, 0, changed)
	assert.Equal(t, content, out)
}

func TestInsertAfterAnchor(t *testing.T) {
	anchor := "OVERRIDE_WINDOW_MGR             = None"
	o := Override{Anchor: anchor, Line: "OVERRIDE_WINDOW_MGR = 'hyprland'"}
	content := "OVERRIDE_DISTRO_ID              = None\n" + anchor + "\nDESKTOP_ENV = None\n"

	out, result := InsertAfterAnchor(content, o)
	require.Equal(t, Inserted, result)
	assert.Contains(t, out, anchor+"\nOVERRIDE_WINDOW_MGR = 'hyprland'\nDESKTOP_ENV")

	again, result := InsertAfterAnchor(out, o)
	assert.Equal(t, AlreadyPresent, result)
	assert.Equal(t, out, again)

	missing, result := InsertAfterAnchor("nothing here\n", o)
	assert.Equal(t, MarkersNotFound, result)
	assert.Equal(t, "nothing here\n", missing)
}

func TestSplicer_SpliceOnce(t *testing.T) {
	fsys := testutil.NewTestFS()
	path := "/home/u/.config/toshy/toshy_config.py"
	testutil.WriteFile(t, fsys, path, toshyConfig("\n"))

	s := New(fsys)
	result, err := s.SpliceOnce(path, toshySlice())
	require.NoError(t, err)
	assert.Equal(t, Inserted, result)
	first := testutil.ReadFile(t, fsys, path)

	result, err = s.SpliceOnce(path, toshySlice())
	require.NoError(t, err)
	assert.Equal(t, AlreadyPresent, result)
	assert.Equal(t, first, testutil.ReadFile(t, fsys, path))
}

func TestSplicer_SpliceOnce_MissingMarkersLeavesFile(t *testing.T) {
	fsys := testutil.NewTestFS()
	path := "/home/u/.config/toshy/toshy_config.py"
	original := "import os\n# hand written config\n"
	testutil.WriteFile(t, fsys, path, original)

	result, err := New(fsys).SpliceOnce(path, toshySlice())
	require.NoError(t, err)
	assert.Equal(t, MarkersNotFound, result)
	assert.Equal(t, original, testutil.ReadFile(t, fsys, path))
}

func TestSplicer_MissingFile(t *testing.T) {
	s := New(testutil.NewTestFS())

	_, err := s.SpliceOnce("/nope/toshy_config.py", toshySlice())
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, err = s.SubstituteLines("/nope/toshy_config.py", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestSplicer_WriteFailure(t *testing.T) {
	base := testutil.NewTestFS()
	path := "/home/u/.config/toshy/toshy_config.py"
	original := toshyConfig("\n")
	testutil.WriteFile(t, base, path, original)

	fsys := testutil.NewFailingFS(base)
	fsys.FailWrites(path, fs.ErrPermission)

	_, err := New(fsys).SpliceOnce(path, toshySlice())
	assert.True(t, errors.IsErrorCode(err, errors.ErrIO))
	assert.Equal(t, original, testutil.ReadFile(t, base, path))
}

func TestSplicer_SubstituteAndOverride(t *testing.T) {
	fsys := testutil.NewTestFS()
	path := "/toshy_config.py"
	line := `    C("RC-Space"):              Key.LEFT_META,`
	testutil.WriteFile(t, fsys, path, "OVERRIDE_WINDOW_MGR             = None\n"+line+"\n")

	s := New(fsys)
	changed, err := s.SubstituteLines(path, []Substitution{CommentOut(line, "  # disabled by omacustom")})
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	result, err := s.Override(path, Override{Anchor: "OVERRIDE_WINDOW_MGR             = None", Line: "OVERRIDE_WINDOW_MGR = 'hyprland'"})
	require.NoError(t, err)
	assert.Equal(t, Inserted, result)

	assert.Equal(t,
		"OVERRIDE_WINDOW_MGR             = None\nOVERRIDE_WINDOW_MGR = 'hyprland'\n    # C(\"RC-Space\"):              Key.LEFT_META,  # disabled by omacustom\n",
		testutil.ReadFile(t, fsys, path))
}

func TestTerminalKeymap(t *testing.T) {
	lines := TerminalKeymap("kitty")
	joined := strings.Join(lines, "\n")
	assert.True(t, strings.HasPrefix(lines[0], KeymapSignature))
	assert.Contains(t, joined, `launch(["kitty"])`)
	assert.Contains(t, joined, `clas="^kitty$"`)
	assert.NotContains(t, joined, "alacritty")
}
