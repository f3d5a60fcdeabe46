package testutil

import (
	"github.com/omarchy-fork/omacustom/pkg/filesystem"
	"github.com/omarchy-fork/omacustom/pkg/types"
	"github.com/spf13/afero"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}
