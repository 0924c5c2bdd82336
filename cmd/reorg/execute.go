package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/reorg/pkg/reorg"
	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

func newExecuteCommand() *cobra.Command {
	var (
		planFile string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "execute [root]",
		Short: "Execute a reorganization plan",
		Long: `Apply a plan to the tree rooted at the given directory. A backup manifest
is persisted before the first move, so the operation can be reverted later.
With --dry-run the same decisions are made and reported, but nothing changes.`,
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

			plan, err := reorg.LoadPlan(planFile)
			if err != nil {
				return err
			}

			store := reorg.NewManifestStore(settings.ManifestPath, settings.ArchiveDir, logger)
			store.SetHashThreshold(settings.HashThreshold)

			executor := reorg.NewExecutor(filesystem.New(root), root, store, logger)
			executor.SetResultsPath(settings.ResultsPath)

			result, err := executor.Execute(plan, dryRun)
			if err != nil {
				var verr *reorg.ValidationError
				if errors.As(err, &verr) {
					fmt.Println("Plan validation failed:")
					for _, issue := range verr.Issues {
						fmt.Printf("  - %s\n", issue)
					}
				}
				return err
			}

			printExecutionResult(result)
			if !dryRun {
				fmt.Printf("\nBackup manifest saved to: %s\n", store.Path())
				fmt.Println("To revert, run: reorg revert")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&planFile, "plan", "plan.json", "plan file to execute")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "simulate without moving anything")
	return cmd
}

func printExecutionResult(result *reorg.ExecutionResult) {
	mode := "Organization complete"
	if result.DryRun {
		mode = "Dry run complete"
	}
	fmt.Printf("%s:\n", mode)
	fmt.Printf("  succeeded:       %d\n", result.SuccessCount)
	fmt.Printf("  failed:          %d\n", len(result.Failures))
	fmt.Printf("  folders created: %d\n", len(result.FoldersCreated))

	for _, outcome := range result.Outcomes {
		switch outcome.Status {
		case reorg.StatusMoved:
			fmt.Printf("  moved   %s -> %s\n", outcome.Source, outcome.FinalPath)
		case reorg.StatusRenamed:
			fmt.Printf("  renamed %s -> %s (destination was occupied)\n", outcome.Source, outcome.FinalPath)
		}
	}
	for _, failure := range result.Failures {
		fmt.Printf("  failed  %s: %s\n", failure.File, failure.Error)
	}
}
