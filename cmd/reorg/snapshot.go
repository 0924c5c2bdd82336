package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/reorg/pkg/reorg"
	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

func newSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot [root]",
		Short: "Record a metadata-plus-hash snapshot of the whole tree",
		Long: `Walk the tree and record every file's size, modification time and (below
the hash threshold) content hash. The snapshot is a point-in-time reference,
not a restorable backup; it is kept beside the backup manifest and shows up
in 'reorg backups'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootDir(args)
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			snap, err := reorg.TakeSnapshot(filesystem.New(root), root, settings.HashThreshold, logger)
			if err != nil {
				return err
			}

			written, err := reorg.SaveSnapshot(snap, filepath.Dir(settings.ManifestPath))
			if err != nil {
				return err
			}

			fmt.Printf("Snapshot created: %s\n", written)
			fmt.Printf("  files:      %d\n", snap.Statistics.TotalFiles)
			fmt.Printf("  total size: %.2f MB\n", snap.Statistics.TotalSizeMB)
			return nil
		},
	}
	return cmd
}
