package reorg_test

import (
	"testing"

	"github.com/arthur-debert/reorg/pkg/reorg"
	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

func TestHashFileMatchesKnownDigest(t *testing.T) {
	fsys := filesystem.NewTestFileSystem()
	if err := fsys.WriteFile("a.txt", []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := reorg.HashFile(fsys, "a.txt")
	if err != nil {
		t.Fatal(err)
	}

	// sha256("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("hash mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestHashFileMissing(t *testing.T) {
	fsys := filesystem.NewTestFileSystem()
	if _, err := reorg.HashFile(fsys, "gone.txt"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
