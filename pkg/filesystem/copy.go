package filesystem

import (
	"path/filepath"

	"github.com/omarchy-fork/omacustom/pkg/types"
)

// CopyFile copies src to dst byte for byte and carries over the permission
// bits and modification time of src. dst is overwritten if it exists.
func CopyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return err
	}
	// WriteFile only applies perm on create.
	if err := fsys.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return fsys.Chtimes(dst, info.ModTime(), info.ModTime())
}

// Exists reports whether name can be stat'ed.
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}
