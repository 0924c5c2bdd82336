package filesystem_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

func TestOSFileSystemRejectsInvalidPaths(t *testing.T) {
	osfs := filesystem.New(t.TempDir())

	invalid := []string{"/abs/path", "../escape", ""}
	for _, name := range invalid {
		if _, err := osfs.Stat(name); err == nil {
			t.Errorf("Stat(%q) should fail", name)
		}
		if err := osfs.WriteFile(name, []byte("x"), 0o644); err == nil {
			t.Errorf("WriteFile(%q) should fail", name)
		}
		if err := osfs.Rename(name, "ok.txt"); err == nil {
			t.Errorf("Rename(%q, ...) should fail", name)
		}
	}
}

func TestOSFileSystemWriteStatRename(t *testing.T) {
	root := t.TempDir()
	osfs := filesystem.New(root)

	if err := osfs.WriteFile("a.txt", []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := osfs.Stat("a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 5 {
		t.Errorf("size: got %d", info.Size())
	}

	if err := osfs.MkdirAll("sub/dir", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := osfs.Rename("a.txt", "sub/dir/a.txt"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(root, "sub", "dir", "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("content: got %q", data)
	}
}

func TestOSFileSystemReadDirViaOpen(t *testing.T) {
	root := t.TempDir()
	osfs := filesystem.New(root)

	if err := osfs.MkdirAll("dir", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := osfs.WriteFile("dir/f.txt", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := fs.ReadDir(osfs, "dir")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "f.txt" {
		t.Errorf("unexpected entries: %v", entries)
	}
}
