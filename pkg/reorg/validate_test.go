package reorg_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/reorg/pkg/reorg"
	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

func fsWithFiles(names ...string) *filesystem.TestFileSystem {
	files := map[string]*fstest.MapFile{}
	for _, name := range names {
		files[name] = &fstest.MapFile{Data: []byte("content"), Mode: 0o644}
	}
	return filesystem.NewTestFileSystemFromMap(files)
}

func TestValidatePlanMissingMovesKey(t *testing.T) {
	plan := &reorg.Plan{Folders: []string{"Work"}}

	issues := reorg.ValidatePlan(fsWithFiles(), plan)
	if len(issues) != 1 {
		t.Fatalf("expected exactly one issue, got %d: %v", len(issues), issues)
	}
	if !strings.Contains(issues[0], "moves") {
		t.Errorf("issue should mention the missing moves key, got %q", issues[0])
	}
}

func TestValidatePlanEmptyMovesIsValid(t *testing.T) {
	plan := &reorg.Plan{Moves: []reorg.Move{}}

	if issues := reorg.ValidatePlan(fsWithFiles(), plan); len(issues) != 0 {
		t.Errorf("empty moves list should be valid, got %v", issues)
	}
}

func TestValidatePlanMissingFields(t *testing.T) {
	plan := &reorg.Plan{
		Moves: []reorg.Move{
			{File: "a.txt", NewPath: "Work/a.txt", Reason: "doc"},
			{}, // everything missing
		},
	}

	issues := reorg.ValidatePlan(fsWithFiles("a.txt"), plan)

	for _, field := range []string{"'file'", "'new_path'", "'reason'"} {
		found := false
		for _, issue := range issues {
			if strings.Contains(issue, "move 1") && strings.Contains(issue, field) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected an issue for move 1 missing %s, got %v", field, issues)
		}
	}
}

func TestValidatePlanMissingSourceNamesIndex(t *testing.T) {
	plan := &reorg.Plan{
		Moves: []reorg.Move{
			{File: "a.txt", NewPath: "Work/a.txt", Reason: "doc"},
			{File: "gone.txt", NewPath: "Work/gone.txt", Reason: "doc"},
		},
	}

	issues := reorg.ValidatePlan(fsWithFiles("a.txt"), plan)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	if !strings.Contains(issues[0], "move 1") || !strings.Contains(issues[0], "gone.txt") {
		t.Errorf("issue should name move 1 and the missing source, got %q", issues[0])
	}
}

func TestValidatePlanRelativePathWinsOverFile(t *testing.T) {
	plan := &reorg.Plan{
		Moves: []reorg.Move{
			{File: "a.txt", RelativePath: "docs/a.txt", NewPath: "Work/a.txt", Reason: "doc"},
		},
	}

	// Only the relative_path location exists; the bare filename does not.
	if issues := reorg.ValidatePlan(fsWithFiles("docs/a.txt"), plan); len(issues) != 0 {
		t.Errorf("source should resolve via relative_path, got %v", issues)
	}
}

func TestValidatePlanDuplicateDestinationReportsBothIndices(t *testing.T) {
	plan := &reorg.Plan{
		Moves: []reorg.Move{
			{File: "a.txt", NewPath: "Work/same.txt", Reason: "doc"},
			{File: "b.txt", NewPath: "Work/same.txt", Reason: "doc"},
		},
	}

	issues := reorg.ValidatePlan(fsWithFiles("a.txt", "b.txt"), plan)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	if !strings.Contains(issues[0], "move 1") || !strings.Contains(issues[0], "move 0") {
		t.Errorf("duplicate-destination issue should reference both indices, got %q", issues[0])
	}
}

func TestValidatePlanAccumulatesAllIssues(t *testing.T) {
	plan := &reorg.Plan{
		Moves: []reorg.Move{
			{File: "missing1.txt", NewPath: "Work/a.txt", Reason: "doc"},
			{File: "missing2.txt", NewPath: "Work/a.txt"}, // missing reason + dup dest
		},
	}

	issues := reorg.ValidatePlan(fsWithFiles(), plan)
	if len(issues) != 4 {
		t.Errorf("expected 4 accumulated issues, got %d: %v", len(issues), issues)
	}
}
