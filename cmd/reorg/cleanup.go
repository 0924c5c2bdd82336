package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/reorg/pkg/reorg"
	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

func newCleanupCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "cleanup [root]",
		Short: "Remove empty directories left behind by moves or reverts",
		Long: `Walk the tree and remove every directory that has zero entries, deepest
first. Removal failures are skipped silently; this is a best-effort tidy-up.`,
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

			cleaner := reorg.NewCleaner(filesystem.New(root), logger)
			removed := cleaner.Sweep(dryRun)
			if dryRun {
				fmt.Printf("Would remove %d empty folder(s)\n", removed)
			} else {
				fmt.Printf("Removed %d empty folder(s)\n", removed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without removing anything")
	return cmd
}
