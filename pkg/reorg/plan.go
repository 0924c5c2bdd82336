package reorg

import (
	"encoding/json"
	"fmt"
	"os"
)

// Plan is an externally produced reorganization plan: directories to ensure
// exist and file moves to perform, all relative to a root directory. The
// engine treats it as read-only input.
type Plan struct {
	Folders []string `json:"folders"`
	Moves   []Move   `json:"moves"`
}

// Move describes a single file relocation. At least one of File and
// RelativePath identifies the current location; NewPath is the target,
// relative to the root.
type Move struct {
	File         string `json:"file"`
	RelativePath string `json:"relative_path,omitempty"`
	NewPath      string `json:"new_path"`
	Reason       string `json:"reason"`
}

// SourcePath resolves the move's current location. RelativePath wins when
// both fields are set; suggestion engines often emit just the bare filename
// in File and the real location in RelativePath.
func (m Move) SourcePath() string {
	if m.RelativePath != "" {
		return m.RelativePath
	}
	return m.File
}

// ParsePlan decodes a plan from JSON. A nil Moves slice after parsing means
// the moves key was absent entirely, which the validator reports.
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	return &plan, nil
}

// LoadPlan reads and decodes a plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file %s: %w", path, err)
	}
	return ParsePlan(data)
}

// MarshalPlan serializes a plan to indented JSON, matching the format
// produced by suggestion engines and accepted by ParsePlan.
func MarshalPlan(plan *Plan) ([]byte, error) {
	return json.MarshalIndent(plan, "", "  ")
}
