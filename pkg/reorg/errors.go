package reorg

import (
	"errors"
	"fmt"
	"strings"
)

// ErrManifestNotFound is returned when a revert is requested and no backup
// manifest resolves at the store's path. It is fatal for that revert call
// only; nothing on disk is touched.
var ErrManifestNotFound = errors.New("backup manifest not found")

// ValidationError is returned when a plan fails validation. Execution
// refuses to start while any issue remains, so nothing on the filesystem
// has been touched when this error is seen.
type ValidationError struct {
	Issues []string
}

// Error returns the full issue list, one per line.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("plan validation failed with %d issue(s)", len(e.Issues))
	if len(e.Issues) > 0 {
		msg += ":\n  - " + strings.Join(e.Issues, "\n  - ")
	}
	return msg
}

// ManifestError wraps a failure to create or persist the backup manifest.
// The executor surfaces it before any move is attempted.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("backup manifest %q: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// MoveFailure records a single failed item within an execution or revert
// batch. Failures are collected, never abort the batch, and are persisted
// as part of the machine-readable result record.
type MoveFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// IntegrityWarning reports a content hash mismatch discovered during a
// revert. It is advisory only; the revert proceeds regardless.
type IntegrityWarning struct {
	File    string `json:"file"`
	Warning string `json:"warning"`
}
