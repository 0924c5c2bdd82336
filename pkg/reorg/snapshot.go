package reorg

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

// SnapshotEntry records one file's metadata in a tree snapshot.
type SnapshotEntry struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Hash     *string   `json:"hash"`
}

// SnapshotStats aggregates counts over a snapshot.
type SnapshotStats struct {
	TotalFiles  int            `json:"total_files"`
	TotalSizeMB float64        `json:"total_size_mb"`
	ByExtension map[string]int `json:"by_extension"`
}

// Snapshot is a metadata-plus-hash record of an entire tree, taken before
// any reorganization as a point-in-time reference. Unlike the backup
// manifest it records every file, not just the ones a plan touches, and it
// drives no automatic restore.
type Snapshot struct {
	Timestamp  time.Time       `json:"timestamp"`
	RootPath   string          `json:"root_path"`
	Files      []SnapshotEntry `json:"files"`
	Statistics SnapshotStats   `json:"statistics"`
}

// TakeSnapshot walks the whole tree and records metadata for every file,
// hashing those below the threshold.
func TakeSnapshot(fsys filesystem.FullFileSystem, rootPath string, hashThreshold int64, logger zerolog.Logger) (*Snapshot, error) {
	snap := &Snapshot{
		Timestamp: time.Now(),
		RootPath:  rootPath,
		Files:     []SnapshotEntry{},
		Statistics: SnapshotStats{
			ByExtension: map[string]int{},
		},
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logger.Warn().Str("path", p).Err(err).Msg("could not stat file for snapshot")
			return nil
		}

		entry := SnapshotEntry{
			Path:     p,
			Size:     info.Size(),
			Modified: info.ModTime(),
		}
		if info.Size() < hashThreshold {
			if hash, err := HashFile(fsys, p); err == nil {
				entry.Hash = &hash
			}
		}
		snap.Files = append(snap.Files, entry)

		snap.Statistics.TotalFiles++
		snap.Statistics.TotalSizeMB += float64(info.Size()) / (1024 * 1024)
		snap.Statistics.ByExtension[strings.ToLower(path.Ext(p))]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// SaveSnapshot persists a snapshot beside the given directory under a
// timestamped name and returns the path written.
func SaveSnapshot(snap *Snapshot, dir string) (string, error) {
	name := fmt.Sprintf("snapshot_%s.json", snap.Timestamp.Format(stampLayout))
	snapshotPath := filepath.Join(dir, name)
	if err := writeResultRecord(snapshotPath, snap); err != nil {
		return "", err
	}
	return snapshotPath, nil
}
