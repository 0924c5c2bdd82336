package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/reorg/pkg/reorg"
	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

func newScanCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Scan a directory tree and report file metadata",
		Args:  cobra.ExactArgs(1),
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

			if asJSON {
				data, err := json.MarshalIndent(files, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			for _, f := range files {
				fmt.Printf("%-50s %8.2f KB  %s\n", f.RelativePath, f.SizeKB, f.Modified.Format("2006-01-02 15:04"))
			}
			fmt.Printf("\n%d file(s) scanned\n", len(files))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
	return cmd
}
