package testutil

import (
	"io/fs"
	"sync"
	"time"

	"github.com/omarchy-fork/omacustom/pkg/types"
)

// FailingFS wraps a types.FS and returns a configured error for any
// mutation of selected paths. Reads pass through untouched.
type FailingFS struct {
	types.FS

	mu     sync.Mutex
	writes map[string]error
	reads  map[string]error
}

// NewFailingFS wraps base
func NewFailingFS(base types.FS) *FailingFS {
	return &FailingFS{
		FS:     base,
		writes: make(map[string]error),
		reads:  make(map[string]error),
	}
}

// FailWrites makes every write, append, chmod and removal of path return err
func (f *FailingFS) FailWrites(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes[path] = err
}

// FailReads makes ReadFile of path return err
func (f *FailingFS) FailReads(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[path] = err
}

func (f *FailingFS) writeErr(op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.writes[path]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	return nil
}

func (f *FailingFS) ReadFile(name string) ([]byte, error) {
	f.mu.Lock()
	err, ok := f.reads[name]
	f.mu.Unlock()
	if ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return f.FS.ReadFile(name)
}

func (f *FailingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.writeErr("write", name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FailingFS) AppendFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.writeErr("open", name); err != nil {
		return err
	}
	return f.FS.AppendFile(name, data, perm)
}

func (f *FailingFS) Chmod(name string, mode fs.FileMode) error {
	if err := f.writeErr("chmod", name); err != nil {
		return err
	}
	return f.FS.Chmod(name, mode)
}

func (f *FailingFS) Chtimes(name string, atime, mtime time.Time) error {
	if err := f.writeErr("chtimes", name); err != nil {
		return err
	}
	return f.FS.Chtimes(name, atime, mtime)
}

func (f *FailingFS) Remove(name string) error {
	if err := f.writeErr("remove", name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FailingFS) RemoveAll(path string) error {
	if err := f.writeErr("remove", path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}
