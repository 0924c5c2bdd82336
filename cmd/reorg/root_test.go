package main

import (
	"testing"
)

// TestRootCmdSetup verifies the command tree assembled in init().
func TestRootCmdSetup(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil after init")
	}

	expectedUse := "reorg"
	if rootCmd.Use != expectedUse {
		t.Errorf("expected command Use %q, got %q", expectedUse, rootCmd.Use)
	}

	expected := map[string]bool{
		"version":  false,
		"validate": false,
		"execute":  false,
		"revert":   false,
		"backups":  false,
		"cleanup":  false,
		"scan":     false,
		"prompt":   false,
		"snapshot": false,
	}
	for _, cmd := range rootCmd.Commands() {
		name := cmd.Name()
		if _, ok := expected[name]; ok {
			expected[name] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("log-level") == nil {
		t.Error("log-level flag not registered")
	}
	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("config flag not registered")
	}
}
