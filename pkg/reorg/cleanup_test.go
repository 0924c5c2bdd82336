package reorg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/reorg/pkg/reorg"
	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

func newCleanerOverTempDir(t *testing.T) (*reorg.Cleaner, string) {
	t.Helper()
	root := t.TempDir()
	logger := reorg.NewTestLogger(os.Stderr)
	return reorg.NewCleaner(filesystem.New(root), logger), root
}

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", dir, err)
		}
	}
}

func TestRemoveEmptyNestedInOnePass(t *testing.T) {
	cleaner, root := newCleanerOverTempDir(t)
	mkdirs(t, root, "a/b/c")

	// Removing c empties b, which empties a: one pass must get all three.
	removed := cleaner.RemoveEmpty([]string{"a", "a/b", "a/b/c"}, false)
	if removed != 3 {
		t.Errorf("expected 3 removals in one pass, got %d", removed)
	}
	if _, err := os.Stat(filepath.Join(root, "a")); !os.IsNotExist(err) {
		t.Error("directory a should be gone")
	}
}

func TestRemoveEmptyCandidateOrderDoesNotMatter(t *testing.T) {
	cleaner, root := newCleanerOverTempDir(t)
	mkdirs(t, root, "a/b/c")

	// Parents listed first; the cleaner must still remove children first.
	removed := cleaner.RemoveEmpty([]string{"a", "a/b", "a/b/c"}, false)
	if removed != 3 {
		t.Fatalf("expected 3, got %d", removed)
	}

	cleaner2, root2 := newCleanerOverTempDir(t)
	mkdirs(t, root2, "a/b/c")
	removed = cleaner2.RemoveEmpty([]string{"a/b/c", "a/b", "a"}, false)
	if removed != 3 {
		t.Errorf("expected 3 regardless of candidate order, got %d", removed)
	}
}

func TestRemoveEmptyPreservesNonEmptyDirs(t *testing.T) {
	cleaner, root := newCleanerOverTempDir(t)
	mkdirs(t, root, "keep")
	if err := os.WriteFile(filepath.Join(root, "keep", "file.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	removed := cleaner.RemoveEmpty([]string{"keep"}, false)
	if removed != 0 {
		t.Errorf("non-empty dir must not be removed, got %d removals", removed)
	}
	if _, err := os.Stat(filepath.Join(root, "keep", "file.txt")); err != nil {
		t.Errorf("file should survive cleanup: %v", err)
	}
}

func TestRemoveEmptyMissingCandidateIsSwallowed(t *testing.T) {
	cleaner, _ := newCleanerOverTempDir(t)

	if removed := cleaner.RemoveEmpty([]string{"never/existed"}, false); removed != 0 {
		t.Errorf("expected 0, got %d", removed)
	}
}

func TestRemoveEmptyDryRunRemovesNothing(t *testing.T) {
	cleaner, root := newCleanerOverTempDir(t)
	mkdirs(t, root, "empty")

	removed := cleaner.RemoveEmpty([]string{"empty"}, true)
	if removed != 1 {
		t.Errorf("dry run should report the would-be removal, got %d", removed)
	}
	if _, err := os.Stat(filepath.Join(root, "empty")); err != nil {
		t.Errorf("dry run must not remove anything: %v", err)
	}
}

func TestSweepRemovesAllEmptiesDeepestFirst(t *testing.T) {
	cleaner, root := newCleanerOverTempDir(t)
	mkdirs(t, root, "x/y/z", "kept")
	if err := os.WriteFile(filepath.Join(root, "kept", "f"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	removed := cleaner.Sweep(false)
	if removed != 3 {
		t.Errorf("expected x, x/y, x/y/z removed, got %d", removed)
	}
	if _, err := os.Stat(filepath.Join(root, "kept")); err != nil {
		t.Errorf("non-empty dir must survive a sweep: %v", err)
	}
	if _, err := os.Stat(root); err != nil {
		t.Errorf("the root itself must never be removed: %v", err)
	}
}
