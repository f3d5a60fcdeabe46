package session

import (
	"io/fs"
	"testing"

	"github.com/omarchy-fork/omacustom/pkg/backup"
	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/omarchy-fork/omacustom/pkg/merge"
	"github.com/omarchy-fork/omacustom/pkg/splice"
	"github.com/omarchy-fork/omacustom/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bashrc = "/home/u/.bashrc"

func bashPatch() FencePatch {
	return FencePatch{
		Label:  "BASH CUSTOMIZATIONS",
		Target: bashrc,
		Lines:  []string{`export EDITOR="vi"`, "alias e='nano'"},
	}
}

func TestRun_AppliesOnceWithBackup(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteFile(t, fsys, bashrc, "# mine\n")
	r := NewRunner(fsys, backup.DefaultSuffix)

	out := r.Run(bashPatch())
	assert.Equal(t, Applied, out.State)
	assert.Equal(t, backup.Created, out.Backup)
	assert.True(t, out.Succeeded())
	assert.NoError(t, out.Err)
	assert.Equal(t, "# mine\n", testutil.ReadFile(t, fsys, bashrc+".original"))
	first := testutil.ReadFile(t, fsys, bashrc)

	out = r.Run(bashPatch())
	assert.Equal(t, AlreadyPresent, out.State)
	assert.Equal(t, backup.AlreadyExists, out.Backup)
	assert.True(t, out.Succeeded())
	assert.Equal(t, first, testutil.ReadFile(t, fsys, bashrc))
	assert.Equal(t, "# mine\n", testutil.ReadFile(t, fsys, bashrc+".original"))
}

func TestRun_MissingTargetIsSkipped(t *testing.T) {
	fsys := testutil.NewTestFS()
	r := NewRunner(fsys, backup.DefaultSuffix)

	out := r.Run(bashPatch())
	assert.Equal(t, Skipped, out.State)
	assert.False(t, out.Succeeded())
	assert.True(t, errors.IsErrorCode(out.Err, errors.ErrNotFound))
	testutil.AssertMissing(t, fsys, bashrc)
	testutil.AssertMissing(t, fsys, bashrc+".original")
}

func TestRun_CreatableTarget(t *testing.T) {
	fsys := testutil.NewTestFS()
	r := NewRunner(fsys, backup.DefaultSuffix)
	style := "/home/u/.config/waybar/style.css"

	out := r.Run(FencePatch{Label: "WAYBAR LANGUAGE STYLING", Target: style, Lines: []string{"#language { margin: 0 7px; }"}, Create: true})
	assert.Equal(t, Applied, out.State)
	assert.Equal(t, backup.Skipped, out.Backup)
	assert.Contains(t, testutil.ReadFile(t, fsys, style), "/* === START WAYBAR LANGUAGE STYLING === */")
}

func TestRun_MarkersAbsentIsSkipped(t *testing.T) {
	fsys := testutil.NewTestFS()
	path := "/home/u/.config/toshy/toshy_config.py"
	testutil.WriteFile(t, fsys, path, "import os\n")
	r := NewRunner(fsys, backup.DefaultSuffix)

	out := r.Run(SplicePatch{
		Label:  "OMARCHY TOSHY CUSTOMIZATIONS",
		Target: path,
		Slice: &splice.Slice{
			Start:     "###  SLICE_MARK_START: user_apps",
			End:       "###  SLICE_MARK_END: user_apps",
			Signature: splice.KeymapSignature,
			Label:     "OMARCHY TOSHY CUSTOMIZATIONS",
			Lines:     splice.TerminalKeymap("alacritty"),
		},
		Override: &splice.Override{Anchor: "OVERRIDE_WINDOW_MGR             = None", Line: "OVERRIDE_WINDOW_MGR = 'hyprland'"},
	})
	assert.Equal(t, Skipped, out.State)
	assert.True(t, errors.IsErrorCode(out.Err, errors.ErrMarkerAbsent))
	assert.Equal(t, "import os\n", testutil.ReadFile(t, fsys, path))
}

func TestRun_PartialSpliceStillApplies(t *testing.T) {
	fsys := testutil.NewTestFS()
	path := "/toshy_config.py"
	testutil.WriteFile(t, fsys, path, "OVERRIDE_WINDOW_MGR             = None\n")
	r := NewRunner(fsys, backup.DefaultSuffix)

	out := r.Run(SplicePatch{
		Label:    "OMARCHY TOSHY CUSTOMIZATIONS",
		Target:   path,
		Slice:    &splice.Slice{Start: "START", End: "END", Signature: "sig", Label: "X"},
		Override: &splice.Override{Anchor: "OVERRIDE_WINDOW_MGR             = None", Line: "OVERRIDE_WINDOW_MGR = 'hyprland'"},
	})
	assert.Equal(t, Applied, out.State)
	assert.Equal(t, "override inserted, slice markers not found", out.Detail)
}

func TestRun_SpliceOutcomeStableWhenMarkersMissing(t *testing.T) {
	fsys := testutil.NewTestFS()
	path := "/toshy_config.py"
	testutil.WriteFile(t, fsys, path, "OVERRIDE_WINDOW_MGR             = None\n")
	r := NewRunner(fsys, backup.DefaultSuffix)
	patch := SplicePatch{
		Label:    "OMARCHY TOSHY CUSTOMIZATIONS",
		Target:   path,
		Slice:    &splice.Slice{Start: "START", End: "END", Signature: "sig", Label: "X"},
		Override: &splice.Override{Anchor: "OVERRIDE_WINDOW_MGR             = None", Line: "OVERRIDE_WINDOW_MGR = 'hyprland'"},
	}

	first := r.Run(patch)
	require.Equal(t, Applied, first.State)
	content := testutil.ReadFile(t, fsys, path)

	second := r.Run(patch)
	assert.Equal(t, AlreadyPresent, second.State)
	assert.NoError(t, second.Err)
	assert.True(t, second.Succeeded())
	assert.Equal(t, "slice markers not found", second.Detail)
	assert.Equal(t, content, testutil.ReadFile(t, fsys, path))
}

func TestRunAll_PermissionErrorDoesNotStopLaterFiles(t *testing.T) {
	hyprland := "/home/u/.config/hypr/hyprland.conf"
	hypridle := "/home/u/.config/hypr/hypridle.conf"

	base := testutil.NewTestFS()
	testutil.WriteFile(t, base, bashrc, "# mine\n")
	testutil.WriteFile(t, base, hyprland, "# hypr\n")
	testutil.WriteFile(t, base, hypridle, "# idle\n")
	fsys := testutil.NewFailingFS(base)
	fsys.FailWrites(bashrc, fs.ErrPermission)
	r := NewRunner(fsys, backup.DefaultSuffix)

	outcomes := r.RunAll([]Patch{
		bashPatch(),
		FencePatch{Label: "OMARCHY HYPRLAND CUSTOMIZATIONS", Target: hyprland, Lines: []string{"input {", "  kb_layout = us,il", "}"}},
		FencePatch{Label: "HYPRIDLE CUSTOMIZATIONS", Target: hypridle, Lines: []string{"listener {", "  timeout = 900", "}"}},
	})
	require.Len(t, outcomes, 3)

	assert.Equal(t, Failed, outcomes[0].State)
	assert.True(t, errors.IsErrorCode(outcomes[0].Err, errors.ErrIO))
	assert.Equal(t, "# mine\n", testutil.ReadFile(t, base, bashrc))

	assert.Equal(t, Applied, outcomes[1].State)
	assert.Contains(t, testutil.ReadFile(t, base, hyprland), "kb_layout = us,il")
	assert.Equal(t, Applied, outcomes[2].State)
	assert.Contains(t, testutil.ReadFile(t, base, hypridle), "timeout = 900")
}

func TestRunAll_ContinuesPastFailures(t *testing.T) {
	fsys := testutil.NewTestFS()
	waybar := "/home/u/.config/waybar/config"
	testutil.WriteFile(t, fsys, waybar, `{"modules-right": "clock"}`)
	testutil.WriteFile(t, fsys, bashrc, "")
	r := NewRunner(fsys, backup.DefaultSuffix)

	outcomes := r.RunAll([]Patch{
		JSONMergePatch{Label: "WAYBAR LANGUAGE MODULE", Target: waybar, Module: merge.DefaultLanguageModule()},
		bashPatch(),
	})
	require.Len(t, outcomes, 2)

	assert.Equal(t, Failed, outcomes[0].State)
	assert.True(t, errors.IsErrorCode(outcomes[0].Err, errors.ErrParse))
	assert.Equal(t, `{"modules-right": "clock"}`, testutil.ReadFile(t, fsys, waybar))

	assert.Equal(t, Applied, outcomes[1].State)
}

func TestRun_BackupFailureIsAWarning(t *testing.T) {
	base := testutil.NewTestFS()
	testutil.WriteFile(t, base, bashrc, "# mine\n")
	fsys := testutil.NewFailingFS(base)
	fsys.FailWrites(bashrc+".original", fs.ErrPermission)
	r := NewRunner(fsys, backup.DefaultSuffix)

	out := r.Run(bashPatch())
	assert.Equal(t, Applied, out.State)
	assert.Equal(t, backup.Failed, out.Backup)
	assert.NotEmpty(t, out.BackupWarning)
	assert.Contains(t, out.String(), "[backup: ")
}

func TestRun_WriteFailure(t *testing.T) {
	base := testutil.NewTestFS()
	testutil.WriteFile(t, base, bashrc, "# mine\n")
	fsys := testutil.NewFailingFS(base)
	fsys.FailWrites(bashrc, fs.ErrPermission)

	out := NewRunner(fsys, backup.DefaultSuffix).Run(bashPatch())
	assert.Equal(t, Failed, out.State)
	assert.True(t, errors.IsErrorCode(out.Err, errors.ErrIO))
	assert.Equal(t, "# mine\n", testutil.ReadFile(t, base, bashrc))
}

func TestRun_FontAlias(t *testing.T) {
	fsys := testutil.NewTestFS()
	path := "/home/u/.config/fontconfig/fonts.conf"
	r := NewRunner(fsys, backup.DefaultSuffix)
	patch := FontAliasPatch{Label: "FONTCONFIG HEBREW FONTS", Target: path, Aliases: merge.DefaultFontAliases()}

	assert.Equal(t, Applied, r.Run(patch).State)
	assert.Equal(t, AlreadyPresent, r.Run(patch).State)
}

func TestOutcome_String(t *testing.T) {
	out := Outcome{Name: "BASH CUSTOMIZATIONS", Path: bashrc, State: Applied, Detail: "added"}
	assert.Equal(t, "applied: BASH CUSTOMIZATIONS (/home/u/.bashrc): added", out.String())

	out = Outcome{Name: "X", Path: "/x", State: Failed, Err: errors.New(errors.ErrIO, "boom")}
	assert.Equal(t, "failed: X (/x): [IO_FAILURE] boom", out.String())
}
