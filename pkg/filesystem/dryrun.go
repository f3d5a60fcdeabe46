package filesystem

import (
	"io/fs"
	"path/filepath"
	"syscall"
	"time"

	"github.com/omarchy-fork/omacustom/pkg/types"
)

// dryRunFS hides removed paths of a copy-on-write filesystem. The overlay
// cannot delete files that only exist on disk, so removals are recorded
// and those paths (and everything below them) read as missing until they
// are written again.
type dryRunFS struct {
	types.FS
	removed map[string]struct{}
}

func newDryRunFS(overlay types.FS) *dryRunFS {
	return &dryRunFS{FS: overlay, removed: make(map[string]struct{})}
}

func (d *dryRunFS) isRemoved(name string) bool {
	for p := filepath.Clean(name); ; p = filepath.Dir(p) {
		if _, ok := d.removed[p]; ok {
			return true
		}
		if p == filepath.Dir(p) {
			return false
		}
	}
}

func (d *dryRunFS) restore(name string) {
	delete(d.removed, filepath.Clean(name))
}

func notExist(op, name string) error {
	return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
}

func (d *dryRunFS) Stat(name string) (fs.FileInfo, error) {
	if d.isRemoved(name) {
		return nil, notExist("stat", name)
	}
	return d.FS.Stat(name)
}

func (d *dryRunFS) Lstat(name string) (fs.FileInfo, error) {
	if d.isRemoved(name) {
		return nil, notExist("lstat", name)
	}
	return d.FS.Lstat(name)
}

func (d *dryRunFS) ReadFile(name string) ([]byte, error) {
	if d.isRemoved(name) {
		return nil, notExist("open", name)
	}
	return d.FS.ReadFile(name)
}

func (d *dryRunFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if d.isRemoved(name) {
		return nil, notExist("open", name)
	}
	entries, err := d.FS.ReadDir(name)
	if err != nil {
		return nil, err
	}
	visible := entries[:0]
	for _, entry := range entries {
		if !d.isRemoved(filepath.Join(name, entry.Name())) {
			visible = append(visible, entry)
		}
	}
	return visible, nil
}

func (d *dryRunFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	d.restore(name)
	return d.FS.WriteFile(name, data, perm)
}

// AppendFile to a removed file starts from empty content
func (d *dryRunFS) AppendFile(name string, data []byte, perm fs.FileMode) error {
	if d.isRemoved(name) {
		d.restore(name)
		return d.FS.WriteFile(name, data, perm)
	}
	return d.FS.AppendFile(name, data, perm)
}

func (d *dryRunFS) Chmod(name string, mode fs.FileMode) error {
	if d.isRemoved(name) {
		return notExist("chmod", name)
	}
	return d.FS.Chmod(name, mode)
}

func (d *dryRunFS) Chtimes(name string, atime, mtime time.Time) error {
	if d.isRemoved(name) {
		return notExist("chtimes", name)
	}
	return d.FS.Chtimes(name, atime, mtime)
}

func (d *dryRunFS) MkdirAll(path string, perm fs.FileMode) error {
	d.restore(path)
	return d.FS.MkdirAll(path, perm)
}

func (d *dryRunFS) Remove(name string) error {
	info, err := d.Lstat(name)
	if err != nil {
		return err
	}
	if info.IsDir() {
		entries, err := d.ReadDir(name)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			return &fs.PathError{Op: "remove", Path: name, Err: syscall.ENOTEMPTY}
		}
	}
	// The overlay copy, if any, goes away; the disk copy is hidden
	_ = d.FS.RemoveAll(name)
	d.removed[filepath.Clean(name)] = struct{}{}
	return nil
}

func (d *dryRunFS) RemoveAll(path string) error {
	if _, err := d.Lstat(path); err != nil {
		return nil
	}
	_ = d.FS.RemoveAll(path)
	d.removed[filepath.Clean(path)] = struct{}{}
	return nil
}
