package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/reorg/pkg/reorg"
)

func newRevertCommand() *cobra.Command {
	var (
		manifestFile string
		noVerify     bool
	)

	cmd := &cobra.Command{
		Use:   "revert",
		Short: "Revert a previous reorganization using its backup manifest",
		Long: `Move every file recorded in the backup manifest back to its original
location, under the root directory the manifest was recorded for. Content
integrity is checked where hashes were recorded; mismatches are reported but
do not block the revert. The manifest is archived afterwards, even when
nothing could be reverted. To retry from an archived manifest, pass its path
with --manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			manifestPath := settings.ManifestPath
			if manifestFile != "" {
				manifestPath = manifestFile
			}

			store := reorg.NewManifestStore(manifestPath, settings.ArchiveDir, logger)
			engine := reorg.NewRevertEngine(store, logger)

			result, err := engine.Revert(!noVerify)
			if err != nil {
				if errors.Is(err, reorg.ErrManifestNotFound) {
					return fmt.Errorf("no backup manifest found, nothing to revert (%w)", err)
				}
				if result == nil {
					return err
				}
				// Revert ran but archiving failed; still report what happened.
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}

			fmt.Println("Revert complete:")
			fmt.Printf("  reverted:              %d\n", result.SuccessCount)
			fmt.Printf("  failed:                %d\n", len(result.Failures))
			fmt.Printf("  integrity warnings:    %d\n", len(result.IntegrityWarnings))
			fmt.Printf("  empty folders removed: %d\n", result.EmptyFoldersRemoved)
			for _, failure := range result.Failures {
				fmt.Printf("  failed  %s: %s\n", failure.File, failure.Error)
			}
			for _, warning := range result.IntegrityWarnings {
				fmt.Printf("  warning %s: %s\n", warning.File, warning.Warning)
			}
			if result.ArchivePath != "" {
				fmt.Printf("\nManifest archived to: %s\n", result.ArchivePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestFile, "manifest", "", "manifest file to revert from (default: the active manifest)")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "skip content integrity verification")
	return cmd
}
