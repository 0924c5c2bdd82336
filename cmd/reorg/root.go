package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/reorg/pkg/reorg"
)

var (
	logLevelFlag string
	settingsFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reorg",
	Short: "Apply reorganization plans to a directory tree, safely and reversibly",
	Long: `reorg applies an externally produced reorganization plan (a mapping of
source files to new relative locations) to a directory tree. Before any file
is moved, a backup manifest records enough state to guarantee a later revert,
including content hashes for integrity verification.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&settingsFlag, "config", ".reorg.yaml", "settings file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newExecuteCommand())
	rootCmd.AddCommand(newRevertCommand())
	rootCmd.AddCommand(newBackupsCommand())
	rootCmd.AddCommand(newCleanupCommand())
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newPromptCommand())
	rootCmd.AddCommand(newSnapshotCommand())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Print the version number of reorg`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reorg version %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// newLogger builds the logger from the persistent log-level flag.
func newLogger() (zerolog.Logger, error) {
	level, err := reorg.LogLevelFromString(logLevelFlag)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", logLevelFlag, err)
	}
	return reorg.NewLogger(os.Stderr, level), nil
}

// loadSettings loads the settings file named by the persistent config flag,
// falling back to defaults when the file is absent.
func loadSettings() (reorg.Settings, error) {
	return reorg.LoadSettings(settingsFlag)
}

// rootDir validates that the positional root argument is an existing
// directory before any engine component sees it.
func rootDir(args []string) (string, error) {
	root := args[0]
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("root path %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root path %s is not a directory", root)
	}
	return root, nil
}
