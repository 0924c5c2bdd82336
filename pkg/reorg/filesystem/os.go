package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem implements FullFileSystem against the OS filesystem, rooted
// at a directory. All paths are slash-separated and relative to that root.
type OSFileSystem struct {
	root string
}

// New creates a new OS-based filesystem rooted at the given path.
func New(root string) *OSFileSystem {
	return &OSFileSystem{root: root}
}

// Root returns the root directory this filesystem operates under.
func (osfs *OSFileSystem) Root() string {
	return osfs.root
}

// Open implements fs.FS.
func (osfs *OSFileSystem) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return os.Open(filepath.Join(osfs.root, name))
}

// Stat implements StatFS.
func (osfs *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	return os.Stat(filepath.Join(osfs.root, name))
}

// WriteFile implements WriteFS.
func (osfs *OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "writefile", Path: name, Err: fs.ErrInvalid}
	}
	return os.WriteFile(filepath.Join(osfs.root, name), data, perm)
}

// MkdirAll implements WriteFS.
func (osfs *OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	if !fs.ValidPath(path) {
		return &fs.PathError{Op: "mkdirall", Path: path, Err: fs.ErrInvalid}
	}
	return os.MkdirAll(filepath.Join(osfs.root, path), perm)
}

// Remove implements WriteFS.
func (osfs *OSFileSystem) Remove(name string) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrInvalid}
	}
	return os.Remove(filepath.Join(osfs.root, name))
}

// Rename implements WriteFS. The rename is atomic when both paths live on
// the same volume; callers needing cross-volume moves must fall back to
// copy-then-delete themselves.
func (osfs *OSFileSystem) Rename(oldpath, newpath string) error {
	if !fs.ValidPath(oldpath) || !fs.ValidPath(newpath) {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrInvalid}
	}
	return os.Rename(filepath.Join(osfs.root, oldpath), filepath.Join(osfs.root, newpath))
}
