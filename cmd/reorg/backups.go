package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/reorg/pkg/reorg"
)

func newBackupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List the active manifest, archived manifests and tree snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			store := reorg.NewManifestStore(settings.ManifestPath, settings.ArchiveDir, logger)
			backups, err := store.ListBackups()
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Println("No backups found")
				return nil
			}

			for _, backup := range backups {
				fmt.Printf("Type: %s\n", backup.Type)
				fmt.Printf("File: %s\n", backup.File)
				fmt.Printf("Date: %s\n", backup.Timestamp.Format("2006-01-02 15:04:05"))
				fmt.Printf("Files: %d\n", backup.Files)
				fmt.Println("--------------------------------------------------")
			}
			return nil
		},
	}
	return cmd
}
