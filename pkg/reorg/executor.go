package reorg

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

// MoveStatus tracks the state of a single plan item through execution.
type MoveStatus string

const (
	StatusPending MoveStatus = "PENDING"
	StatusMoved   MoveStatus = "MOVED"
	StatusRenamed MoveStatus = "RENAMED" // destination was occupied, incoming file renamed
	StatusSkipped MoveStatus = "SKIPPED" // source missing at execution time
	StatusFailed  MoveStatus = "FAILED"
)

// MoveOutcome reports what happened to one plan item. FinalPath differs from
// the planned new_path when a conflict rename was applied.
type MoveOutcome struct {
	Source    string     `json:"source"`
	FinalPath string     `json:"final_path,omitempty"`
	Status    MoveStatus `json:"status"`
	Reason    string     `json:"reason,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// ExecutionResult summarizes one execution attempt. The call as a whole is
// considered successful when SuccessCount > 0; the Failures list is
// reporting, not gating.
type ExecutionResult struct {
	Timestamp      time.Time     `json:"timestamp"`
	SuccessCount   int           `json:"success_count"`
	Failures       []MoveFailure `json:"failures"`
	FoldersCreated []string      `json:"folders_created"`
	DryRun         bool          `json:"dry_run"`
	Outcomes       []MoveOutcome `json:"outcomes"`
}

// Executor turns a validated plan into filesystem changes, writing a backup
// manifest before any mutation. It is not safe to run concurrently with
// another Executor or RevertEngine against the same root.
type Executor struct {
	fsys        filesystem.FullFileSystem
	rootPath    string
	store       *ManifestStore
	resultsPath string
	logger      zerolog.Logger
	now         func() time.Time
}

// NewExecutor creates an executor for the tree rooted at rootPath, exposed
// through fsys. The store decides where the backup manifest lives.
func NewExecutor(fsys filesystem.FullFileSystem, rootPath string, store *ManifestStore, logger zerolog.Logger) *Executor {
	return &Executor{
		fsys:     fsys,
		rootPath: rootPath,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// SetResultsPath enables persistence of the machine-readable execution
// record after each non-dry-run batch.
func (e *Executor) SetResultsPath(path string) {
	e.resultsPath = path
}

// Execute runs the plan. It fails fast with a ValidationError before any
// mutation if the plan is invalid, and with a ManifestError if the backup
// manifest cannot be persisted. Per-item move failures never abort the
// batch; they are collected in the result.
//
// In dry-run mode the same decision tree runs and is reported identically,
// but nothing on the filesystem changes and no manifest is written.
func (e *Executor) Execute(plan *Plan, dryRun bool) (*ExecutionResult, error) {
	if issues := ValidatePlan(e.fsys, plan); len(issues) > 0 {
		e.logger.Warn().Int("issues", len(issues)).Msg("plan validation failed")
		return nil, &ValidationError{Issues: issues}
	}

	e.logger.Info().
		Int("moves", len(plan.Moves)).
		Int("folders", len(plan.Folders)).
		Bool("dry_run", dryRun).
		Msg("starting plan execution")

	// The manifest must be fully persisted before the first move so that a
	// crash at any later point still leaves a revert-consistent record.
	if !dryRun {
		if _, err := e.store.Create(e.fsys, e.rootPath, plan); err != nil {
			return nil, err
		}
	}

	result := &ExecutionResult{
		Timestamp:      e.now(),
		Failures:       []MoveFailure{},
		FoldersCreated: []string{},
		DryRun:         dryRun,
	}

	for _, folder := range plan.Folders {
		if _, err := e.fsys.Stat(folder); err == nil {
			continue
		}
		if !dryRun {
			if err := e.fsys.MkdirAll(folder, 0o755); err != nil {
				e.logger.Warn().Str("folder", folder).Err(err).Msg("failed to create folder")
				result.Failures = append(result.Failures, MoveFailure{File: folder, Error: err.Error()})
				continue
			}
		}
		result.FoldersCreated = append(result.FoldersCreated, folder)
		e.logger.Debug().Str("folder", folder).Bool("dry_run", dryRun).Msg("folder created")
	}

	for i, move := range plan.Moves {
		outcome := e.executeMove(move, dryRun)
		result.Outcomes = append(result.Outcomes, outcome)

		switch outcome.Status {
		case StatusMoved, StatusRenamed:
			result.SuccessCount++
		case StatusSkipped, StatusFailed:
			result.Failures = append(result.Failures, MoveFailure{File: outcome.Source, Error: outcome.Error})
		}

		e.logger.Debug().
			Int("index", i).
			Str("source", outcome.Source).
			Str("status", string(outcome.Status)).
			Msg("move processed")
	}

	e.logger.Info().
		Int("succeeded", result.SuccessCount).
		Int("failed", len(result.Failures)).
		Int("folders_created", len(result.FoldersCreated)).
		Bool("dry_run", dryRun).
		Msg("plan execution finished")

	if !dryRun && e.resultsPath != "" {
		if err := writeResultRecord(e.resultsPath, result); err != nil {
			e.logger.Warn().Str("path", e.resultsPath).Err(err).Msg("failed to persist execution result")
		}
	}

	return result, nil
}

// executeMove runs the per-item state machine: PENDING, then exactly one of
// MOVED, RENAMED, SKIPPED or FAILED.
func (e *Executor) executeMove(move Move, dryRun bool) MoveOutcome {
	outcome := MoveOutcome{
		Source: move.SourcePath(),
		Status: StatusPending,
		Reason: move.Reason,
	}

	if _, err := e.fsys.Stat(outcome.Source); err != nil {
		outcome.Status = StatusSkipped
		outcome.Error = "source file not found"
		return outcome
	}

	dest := move.NewPath

	if !dryRun {
		if parent := path.Dir(dest); parent != "." {
			if err := e.fsys.MkdirAll(parent, 0o755); err != nil {
				outcome.Status = StatusFailed
				outcome.Error = err.Error()
				return outcome
			}
		}
	}

	// Never overwrite: when the destination is occupied, the incoming file
	// is renamed with a timestamp and the occupant is left untouched.
	renamed := false
	if _, err := e.fsys.Stat(dest); err == nil {
		dest = e.conflictName(dest)
		renamed = true
	}
	outcome.FinalPath = dest

	if !dryRun {
		if err := moveFile(e.fsys, outcome.Source, dest); err != nil {
			outcome.Status = StatusFailed
			outcome.Error = err.Error()
			return outcome
		}
	}

	if renamed {
		outcome.Status = StatusRenamed
	} else {
		outcome.Status = StatusMoved
	}
	return outcome
}

// conflictName derives a non-colliding variant of name by inserting a
// second-granularity timestamp before the extension, with a counter for
// repeated conflicts within the same second.
func (e *Executor) conflictName(name string) string {
	stamp := e.now().Format(stampLayout)
	candidate := stampedName(name, stamp)
	for counter := 1; ; counter++ {
		if _, err := e.fsys.Stat(candidate); err != nil {
			return candidate
		}
		candidate = stampedName(name, fmt.Sprintf("%s_%d", stamp, counter))
	}
}

// stampedName inserts suffix between the stem and extension of name.
func stampedName(name, suffix string) string {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%s%s", stem, suffix, ext)
}

// moveFile renames src to dst, falling back to copy-then-delete when rename
// is not possible (typically across volumes). The fallback is not atomic; a
// failure mid-copy can leave both a partial destination and the source.
func moveFile(fsys filesystem.FullFileSystem, src, dst string) error {
	if err := fsys.Rename(src, dst); err == nil {
		return nil
	}

	if err := copyFile(fsys, src, dst); err != nil {
		return fmt.Errorf("move failed during copy: %w", err)
	}
	if err := fsys.Remove(src); err != nil {
		_ = fsys.Remove(dst)
		return fmt.Errorf("move failed during delete: %w", err)
	}
	return nil
}

func copyFile(fsys filesystem.FullFileSystem, src, dst string) error {
	f, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	content, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	mode := fs.FileMode(0o644)
	if info, err := f.Stat(); err == nil {
		mode = info.Mode().Perm()
	}

	return fsys.WriteFile(dst, content, mode)
}

// writeResultRecord persists a result struct as indented JSON, creating the
// parent directory if needed.
func writeResultRecord(resultPath string, record interface{}) error {
	if dir := filepath.Dir(resultPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(resultPath, data, 0o644)
}
