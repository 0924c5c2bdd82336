package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/reorg/pkg/reorg"
	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

func newPromptCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "prompt [root]",
		Short: "Build a suggestion-engine prompt from a directory scan",
		Long: `Scan the tree and render its metadata into the prompt text an external
suggestion engine consumes to produce a plan. The prompt is written to stdout
or, with --out, to a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootDir(args)
			if err != nil {
				return err
			}
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			files, err := reorg.Scan(filesystem.New(root), settings)
			if err != nil {
				return err
			}
			prompt := reorg.BuildPrompt(files)

			if outFile == "" {
				fmt.Println(prompt)
				return nil
			}
			if err := os.WriteFile(outFile, []byte(prompt), 0o644); err != nil {
				return err
			}
			fmt.Printf("Prompt saved to %s (%d files included)\n", outFile, min(len(files), reorg.MaxPromptFiles))
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "write the prompt to a file")
	return cmd
}
