package reorg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

const stampLayout = "20060102_150405"

// FileRecord captures the pre-move state of a single file. Every record is
// written before its corresponding move is attempted, so the manifest is
// always revert-consistent with the filesystem.
type FileRecord struct {
	OriginalPath string    `json:"original_path"`
	NewPath      string    `json:"new_path"`
	FileHash     *string   `json:"file_hash"`
	Size         int64     `json:"size"`
	Modified     time.Time `json:"modified"`
}

// PlanSummary records the shape of the plan the manifest was created for.
type PlanSummary struct {
	TotalMoves     int      `json:"total_moves"`
	FoldersCreated []string `json:"folders_created"`
}

// BackupManifest is the durable record of original file state created before
// an execution mutates anything. It is consumed at most meaningfully once by
// a revert, then moved to the archive directory, never deleted.
type BackupManifest struct {
	Timestamp     time.Time    `json:"timestamp"`
	RootPath      string       `json:"root_path"`
	OriginalState []FileRecord `json:"original_state"`
	PlanSummary   PlanSummary  `json:"plan_summary"`
}

// BackupInfo summarizes one discoverable backup artifact for listings.
type BackupInfo struct {
	Type      string    `json:"type"`
	File      string    `json:"file"`
	Timestamp time.Time `json:"timestamp"`
	Files     int       `json:"files"`
}

// ManifestStore persists, loads and archives backup manifests at an explicit
// path. Keeping the path a constructor argument rather than a package-level
// constant lets multiple roots or sessions coexist without colliding.
type ManifestStore struct {
	path          string
	archiveDir    string
	hashThreshold int64
	logger        zerolog.Logger
	now           func() time.Time
}

// NewManifestStore creates a store that keeps the active manifest at path
// and archives consumed manifests under archiveDir.
func NewManifestStore(path, archiveDir string, logger zerolog.Logger) *ManifestStore {
	return &ManifestStore{
		path:          path,
		archiveDir:    archiveDir,
		hashThreshold: DefaultHashThreshold,
		logger:        logger,
		now:           time.Now,
	}
}

// SetHashThreshold overrides the size cutoff below which source files are
// hashed during Create.
func (ms *ManifestStore) SetHashThreshold(threshold int64) {
	ms.hashThreshold = threshold
}

// Path returns the location of the active manifest.
func (ms *ManifestStore) Path() string {
	return ms.path
}

// Create records the pre-move state of every existing source in the plan and
// persists the manifest. It returns only once the write is confirmed on
// disk; the executor must not mutate the filesystem before then.
func (ms *ManifestStore) Create(fsys filesystem.StatFS, rootPath string, plan *Plan) (*BackupManifest, error) {
	manifest := &BackupManifest{
		Timestamp:     ms.now(),
		RootPath:      rootPath,
		OriginalState: []FileRecord{},
		PlanSummary: PlanSummary{
			TotalMoves:     len(plan.Moves),
			FoldersCreated: plan.Folders,
		},
	}

	for _, move := range plan.Moves {
		source := move.SourcePath()
		info, err := fsys.Stat(source)
		if err != nil {
			// Missing sources are reported by validation and again as
			// per-item failures during execution; the snapshot records
			// only what actually exists.
			continue
		}

		record := FileRecord{
			OriginalPath: source,
			NewPath:      move.NewPath,
			Size:         info.Size(),
			Modified:     info.ModTime(),
		}
		if info.Mode().IsRegular() && info.Size() < ms.hashThreshold {
			if hash, err := HashFile(fsys, source); err == nil {
				record.FileHash = &hash
			} else {
				ms.logger.Warn().Str("path", source).Err(err).Msg("failed to hash source file")
			}
		}
		manifest.OriginalState = append(manifest.OriginalState, record)
	}

	if err := ms.save(manifest); err != nil {
		return nil, &ManifestError{Path: ms.path, Err: err}
	}

	ms.logger.Info().
		Str("manifest", ms.path).
		Int("records", len(manifest.OriginalState)).
		Int("total_moves", manifest.PlanSummary.TotalMoves).
		Msg("backup manifest persisted")

	return manifest, nil
}

// save writes the manifest and syncs it to durable storage before returning.
func (ms *ManifestStore) save(manifest *BackupManifest) error {
	if dir := filepath.Dir(ms.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.OpenFile(ms.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Load reads the manifest at the store's path. It returns
// ErrManifestNotFound when no manifest resolves there.
func (ms *ManifestStore) Load() (*BackupManifest, error) {
	data, err := os.ReadFile(ms.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, ms.path)
		}
		return nil, &ManifestError{Path: ms.path, Err: err}
	}

	var manifest BackupManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &ManifestError{Path: ms.path, Err: err}
	}
	return &manifest, nil
}

// Archive moves the active manifest into the archive directory under a
// timestamped name, returning the archive path. Existing archives are never
// overwritten; a counter disambiguates rapid repeated archives within the
// same second. The manifest data itself is never deleted.
func (ms *ManifestStore) Archive() (string, error) {
	if _, err := os.Stat(ms.path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrManifestNotFound, ms.path)
		}
		return "", &ManifestError{Path: ms.path, Err: err}
	}

	if err := os.MkdirAll(ms.archiveDir, 0o755); err != nil {
		return "", &ManifestError{Path: ms.archiveDir, Err: err}
	}

	stamp := ms.now().Format(stampLayout)
	archivePath := filepath.Join(ms.archiveDir, fmt.Sprintf("backup_manifest_%s.json", stamp))
	for counter := 1; ; counter++ {
		if _, err := os.Stat(archivePath); os.IsNotExist(err) {
			break
		}
		archivePath = filepath.Join(ms.archiveDir, fmt.Sprintf("backup_manifest_%s_%d.json", stamp, counter))
	}

	if err := os.Rename(ms.path, archivePath); err != nil {
		// Cross-volume archive directories make rename fail; fall back to
		// copy-then-delete.
		data, readErr := os.ReadFile(ms.path)
		if readErr != nil {
			return "", &ManifestError{Path: ms.path, Err: err}
		}
		if writeErr := os.WriteFile(archivePath, data, 0o644); writeErr != nil {
			return "", &ManifestError{Path: archivePath, Err: writeErr}
		}
		if rmErr := os.Remove(ms.path); rmErr != nil {
			return "", &ManifestError{Path: ms.path, Err: rmErr}
		}
	}

	ms.logger.Info().Str("archive", archivePath).Msg("manifest archived")
	return archivePath, nil
}

// ListBackups returns every discoverable backup artifact: the active
// manifest, archived manifests, and tree snapshots kept beside the manifest.
func (ms *ManifestStore) ListBackups() ([]BackupInfo, error) {
	var backups []BackupInfo

	if manifest, err := ms.Load(); err == nil {
		backups = append(backups, BackupInfo{
			Type:      "organization backup",
			File:      ms.path,
			Timestamp: manifest.Timestamp,
			Files:     len(manifest.OriginalState),
		})
	}

	archives, err := filepath.Glob(filepath.Join(ms.archiveDir, "backup_manifest_*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(archives)
	for _, archive := range archives {
		var manifest BackupManifest
		data, err := os.ReadFile(archive)
		if err != nil || json.Unmarshal(data, &manifest) != nil {
			ms.logger.Debug().Str("archive", archive).Msg("skipping unreadable archive")
			continue
		}
		backups = append(backups, BackupInfo{
			Type:      "archived manifest",
			File:      archive,
			Timestamp: manifest.Timestamp,
			Files:     len(manifest.OriginalState),
		})
	}

	snapshots, err := filepath.Glob(filepath.Join(filepath.Dir(ms.path), "snapshot_*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(snapshots)
	for _, snapshot := range snapshots {
		var snap Snapshot
		data, err := os.ReadFile(snapshot)
		if err != nil || json.Unmarshal(data, &snap) != nil {
			ms.logger.Debug().Str("snapshot", snapshot).Msg("skipping unreadable snapshot")
			continue
		}
		backups = append(backups, BackupInfo{
			Type:      "tree snapshot",
			File:      snapshot,
			Timestamp: snap.Timestamp,
			Files:     snap.Statistics.TotalFiles,
		})
	}

	return backups, nil
}
