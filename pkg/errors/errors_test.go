package errors_test

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapIO_Classification(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		wantCode errors.ErrorCode
	}{
		{"missing file is not found", fs.ErrNotExist, errors.ErrNotFound},
		{"missing file behind a path error", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist}, errors.ErrNotFound},
		{"permission denied is an io failure", fs.ErrPermission, errors.ErrIO},
		{"anything else is an io failure", stderrors.New("disk full"), errors.ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.WrapIO(tt.cause, "write", "/home/u/.bashrc")
			require.NotNil(t, err)

			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err))
			assert.Equal(t, "/home/u/.bashrc", err.Details["path"])
			assert.ErrorIs(t, err, tt.cause)
			assert.Contains(t, err.Error(), "write /home/u/.bashrc")
		})
	}
}

func TestWrap_NilStaysNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrIO, "read"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrIO, "read %s", "x"))
	assert.Nil(t, errors.WrapIO(nil, "read", "x"))
}

func TestErrorString(t *testing.T) {
	plain := errors.New(errors.ErrMarkerAbsent, "slice markers not found")
	assert.Equal(t, "[MARKER_ABSENT] slice markers not found", plain.Error())

	wrapped := errors.Wrapf(stderrors.New("unexpected token"), errors.ErrParse, "invalid %s", "config.jsonc")
	assert.Equal(t, "[PARSE_FAILURE] invalid config.jsonc: unexpected token", wrapped.Error())
}

func TestCodesSurviveWrapping(t *testing.T) {
	inner := errors.WrapIO(fs.ErrNotExist, "stat", "/etc/keyd/default.conf")
	outer := fmt.Errorf("patch keyd: %w", inner)

	assert.True(t, errors.IsErrorCode(outer, errors.ErrNotFound))
	assert.False(t, errors.IsErrorCode(outer, errors.ErrIO))
	assert.Equal(t, errors.ErrNotFound, errors.GetErrorCode(outer))
	assert.True(t, stderrors.Is(outer, errors.New(errors.ErrNotFound, "")))
}

func TestGetErrorCode_ForeignErrors(t *testing.T) {
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("boom")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
	assert.False(t, errors.IsErrorCode(nil, errors.ErrIO))
}

func TestWithDetail(t *testing.T) {
	err := errors.Newf(errors.ErrInvalidInput, "%s: must not be empty", "terminal").WithDetail("key", "terminal")
	assert.Equal(t, "terminal", err.Details["key"])

	bare := &errors.OmaError{Code: errors.ErrInternal}
	bare.WithDetail("step", "git config")
	assert.Equal(t, "git config", bare.Details["step"])
}
