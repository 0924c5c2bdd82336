package reorg

import (
	"fmt"

	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

// ValidatePlan checks a plan's structural validity and source-file existence
// against the filesystem. It accumulates every issue it finds rather than
// stopping at the first; an empty result means the plan is valid.
//
// Checks, in order:
//   - the moves key is present (absent: single issue, returned immediately)
//   - each move carries file, new_path and reason
//   - each move's resolved source exists
//   - no two moves target the same destination
func ValidatePlan(fsys filesystem.StatFS, plan *Plan) []string {
	var issues []string

	if plan.Moves == nil {
		return []string{"missing 'moves' key in plan"}
	}

	destinations := make(map[string]int)

	for i, move := range plan.Moves {
		if move.File == "" {
			issues = append(issues, fmt.Sprintf("move %d: missing required field 'file'", i))
		}
		if move.NewPath == "" {
			issues = append(issues, fmt.Sprintf("move %d: missing required field 'new_path'", i))
		}
		if move.Reason == "" {
			issues = append(issues, fmt.Sprintf("move %d: missing required field 'reason'", i))
		}

		if source := move.SourcePath(); source != "" {
			if _, err := fsys.Stat(source); err != nil {
				issues = append(issues, fmt.Sprintf("move %d: source file not found: %s", i, source))
			}
		}

		if move.NewPath != "" {
			if first, seen := destinations[move.NewPath]; seen {
				issues = append(issues, fmt.Sprintf("move %d: duplicate destination %q (first used by move %d)", i, move.NewPath, first))
			} else {
				destinations[move.NewPath] = i
			}
		}
	}

	return issues
}
