package reorg

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

// RevertResult summarizes one revert attempt. Integrity warnings are
// advisory; the files they name were restored anyway.
type RevertResult struct {
	Timestamp           time.Time          `json:"timestamp"`
	SuccessCount        int                `json:"success_count"`
	Failures            []MoveFailure      `json:"failures"`
	IntegrityWarnings   []IntegrityWarning `json:"integrity_warnings"`
	EmptyFoldersRemoved int                `json:"empty_folders_removed"`
	ArchivePath         string             `json:"archive_path,omitempty"`
}

// RevertEngine restores files to their original locations from a backup
// manifest, verifying content integrity where hashes were recorded. The
// manifest names the root it was recorded for; the engine operates on that
// root, never on a caller-supplied one. Like the Executor, it must not run
// concurrently with other operations on the same root.
type RevertEngine struct {
	store       *ManifestStore
	resultsPath string
	logger      zerolog.Logger
	now         func() time.Time
}

// NewRevertEngine creates a revert engine consuming the manifest the store
// points at.
func NewRevertEngine(store *ManifestStore, logger zerolog.Logger) *RevertEngine {
	return &RevertEngine{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SetResultsPath enables persistence of the machine-readable revert record.
func (r *RevertEngine) SetResultsPath(path string) {
	r.resultsPath = path
}

// Revert replays the manifest in reverse: every recorded file is moved from
// its new path back to its original path, under the root the manifest was
// recorded for. Already-reverted files count as successes, so retrying a
// revert is idempotent. After the batch, folders the originating plan
// created are cleaned up if empty, and the manifest is archived
// unconditionally — even at zero successes — so that a problematic manifest
// is never retried by accident.
func (r *RevertEngine) Revert(verifyIntegrity bool) (*RevertResult, error) {
	manifest, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	// The manifest's recorded root is authoritative: reverting against any
	// other directory would consume the manifest without restoring anything.
	fsys := filesystem.New(manifest.RootPath)

	r.logger.Info().
		Time("organized_at", manifest.Timestamp).
		Str("root", manifest.RootPath).
		Int("records", len(manifest.OriginalState)).
		Bool("verify_integrity", verifyIntegrity).
		Msg("starting revert")

	result := &RevertResult{
		Timestamp:         r.now(),
		Failures:          []MoveFailure{},
		IntegrityWarnings: []IntegrityWarning{},
	}

	for _, record := range manifest.OriginalState {
		r.revertRecord(fsys, record, verifyIntegrity, result)
	}

	cleaner := NewCleaner(fsys, r.logger)
	result.EmptyFoldersRemoved = cleaner.RemoveEmpty(manifest.PlanSummary.FoldersCreated, false)

	archivePath, err := r.store.Archive()
	if err != nil {
		return result, fmt.Errorf("revert finished but manifest could not be archived: %w", err)
	}
	result.ArchivePath = archivePath

	r.logger.Info().
		Int("reverted", result.SuccessCount).
		Int("failed", len(result.Failures)).
		Int("integrity_warnings", len(result.IntegrityWarnings)).
		Int("empty_folders_removed", result.EmptyFoldersRemoved).
		Str("archive", archivePath).
		Msg("revert finished")

	if r.resultsPath != "" {
		if err := writeResultRecord(r.resultsPath, result); err != nil {
			r.logger.Warn().Str("path", r.resultsPath).Err(err).Msg("failed to persist revert result")
		}
	}

	return result, nil
}

func (r *RevertEngine) revertRecord(fsys filesystem.FullFileSystem, record FileRecord, verifyIntegrity bool, result *RevertResult) {
	current := record.NewPath
	original := record.OriginalPath

	if _, err := fsys.Stat(current); err != nil {
		if _, err := fsys.Stat(original); err == nil {
			// Already back in place, most likely from an earlier partial
			// revert. Counts as a success.
			result.SuccessCount++
			return
		}
		result.Failures = append(result.Failures, MoveFailure{
			File:  current,
			Error: "file not found in current location",
		})
		return
	}

	if verifyIntegrity && record.FileHash != nil {
		actual, err := HashFile(fsys, current)
		if err != nil || actual != *record.FileHash {
			result.IntegrityWarnings = append(result.IntegrityWarnings, IntegrityWarning{
				File:    current,
				Warning: "file has been modified since organization",
			})
		}
	}

	if parent := path.Dir(original); parent != "." {
		if err := fsys.MkdirAll(parent, 0o755); err != nil {
			result.Failures = append(result.Failures, MoveFailure{File: current, Error: err.Error()})
			return
		}
	}

	// The reverted file always wins the original slot. Whatever occupies it
	// now is renamed aside, never deleted.
	if _, err := fsys.Stat(original); err == nil {
		aside := r.asideName(fsys, original)
		if err := fsys.Rename(original, aside); err != nil {
			result.Failures = append(result.Failures, MoveFailure{File: current, Error: err.Error()})
			return
		}
		r.logger.Warn().
			Str("original", original).
			Str("renamed_to", aside).
			Msg("conflict resolved: existing file renamed aside")
	}

	if err := moveFile(fsys, current, original); err != nil {
		result.Failures = append(result.Failures, MoveFailure{File: current, Error: err.Error()})
		return
	}
	result.SuccessCount++
}

// asideName derives a collision-avoiding name for a file that occupies a
// slot being reclaimed by a revert.
func (r *RevertEngine) asideName(fsys filesystem.FullFileSystem, name string) string {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	stamp := r.now().Format(stampLayout)
	candidate := fmt.Sprintf("%s_conflict_%s%s", stem, stamp, ext)
	for counter := 1; ; counter++ {
		if _, err := fsys.Stat(candidate); err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s_conflict_%s_%d%s", stem, stamp, counter, ext)
	}
}
