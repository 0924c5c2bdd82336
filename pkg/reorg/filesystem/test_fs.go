package filesystem

import (
	"io/fs"
	"strings"
	"syscall"
	"testing/fstest"
)

// TestFileSystem extends fstest.MapFS to implement FullFileSystem, so unit
// tests can exercise the engine without touching the disk.
type TestFileSystem struct {
	fstest.MapFS
}

// NewTestFileSystem creates a new empty test filesystem.
func NewTestFileSystem() *TestFileSystem {
	return &TestFileSystem{
		MapFS: make(fstest.MapFS),
	}
}

// NewTestFileSystemFromMap creates a test filesystem from an existing map.
func NewTestFileSystemFromMap(files map[string]*fstest.MapFile) *TestFileSystem {
	return &TestFileSystem{
		MapFS: files,
	}
}

// WriteFile implements WriteFS.
func (tfs *TestFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "writefile", Path: name, Err: fs.ErrInvalid}
	}
	tfs.MapFS[name] = &fstest.MapFile{
		Data: data,
		Mode: perm,
	}
	return nil
}

// MkdirAll implements WriteFS.
func (tfs *TestFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	if !fs.ValidPath(path) {
		return &fs.PathError{Op: "mkdirall", Path: path, Err: fs.ErrInvalid}
	}
	tfs.MapFS[path] = &fstest.MapFile{
		Mode: perm | fs.ModeDir,
	}
	return nil
}

// Remove implements WriteFS. Like os.Remove, it refuses to remove a
// directory that still has entries.
func (tfs *TestFileSystem) Remove(name string) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrInvalid}
	}
	file, exists := tfs.MapFS[name]
	if !exists {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	if file.Mode.IsDir() {
		for path := range tfs.MapFS {
			if strings.HasPrefix(path, name+"/") {
				return &fs.PathError{Op: "remove", Path: name, Err: syscall.ENOTEMPTY}
			}
		}
	}
	delete(tfs.MapFS, name)
	return nil
}

// Rename implements WriteFS. Matches the engine's no-overwrite discipline by
// refusing to rename onto an existing path.
func (tfs *TestFileSystem) Rename(oldpath, newpath string) error {
	if !fs.ValidPath(oldpath) || !fs.ValidPath(newpath) {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrInvalid}
	}
	file, exists := tfs.MapFS[oldpath]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	if _, exists := tfs.MapFS[newpath]; exists {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrExist}
	}
	tfs.MapFS[newpath] = file
	delete(tfs.MapFS, oldpath)
	return nil
}

// Stat implements StatFS.
func (tfs *TestFileSystem) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	file, err := tfs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	return file.Stat()
}
