package filesystem

import (
	"io/fs"
)

// ReadFS is an alias for fs.FS, representing a read-only file system.
type ReadFS = fs.FS

// WriteFS defines the interface for write operations on a file system.
type WriteFS interface {
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// StatFS extends ReadFS with Stat capabilities for better io/fs compatibility.
type StatFS interface {
	ReadFS
	Stat(name string) (fs.FileInfo, error)
}

// FullFileSystem provides the complete filesystem interface including Stat.
// The reorganization engine operates entirely through this interface, with
// every path relative to the root the filesystem was created with.
type FullFileSystem interface {
	StatFS
	WriteFS
}
