package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/reorg/pkg/reorg"
	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

func newValidateCommand() *cobra.Command {
	var planFile string

	cmd := &cobra.Command{
		Use:   "validate [root]",
		Short: "Validate a reorganization plan against a directory tree",
		Long: `Check a plan's structure and source-file existence without touching the
filesystem. All issues are reported, not just the first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootDir(args)
			if err != nil {
				return err
			}

			plan, err := reorg.LoadPlan(planFile)
			if err != nil {
				return err
			}

			issues := reorg.ValidatePlan(filesystem.New(root), plan)
			if len(issues) == 0 {
				fmt.Printf("Plan is valid: %d folder(s), %d move(s)\n", len(plan.Folders), len(plan.Moves))
				return nil
			}

			fmt.Printf("Plan validation failed with %d issue(s):\n", len(issues))
			for _, issue := range issues {
				fmt.Printf("  - %s\n", issue)
			}
			return fmt.Errorf("plan is not executable")
		},
	}

	cmd.Flags().StringVar(&planFile, "plan", "plan.json", "plan file to validate")
	return cmd
}
