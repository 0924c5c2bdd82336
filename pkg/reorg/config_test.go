package reorg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/reorg/pkg/reorg"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := reorg.LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if settings.HashThreshold != reorg.DefaultHashThreshold {
		t.Errorf("expected default hash threshold, got %d", settings.HashThreshold)
	}
	if settings.ManifestPath == "" {
		t.Error("default manifest path should be set")
	}
}

func TestLoadSettingsOverlaysOnlySetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "hash_threshold: 1024\nmanifest_path: custom/manifest.json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := reorg.LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if settings.HashThreshold != 1024 {
		t.Errorf("hash_threshold not overlaid, got %d", settings.HashThreshold)
	}
	if settings.ManifestPath != "custom/manifest.json" {
		t.Errorf("manifest_path not overlaid, got %q", settings.ManifestPath)
	}
	if settings.ArchiveDir != reorg.DefaultSettings().ArchiveDir {
		t.Errorf("unset fields must keep defaults, got %q", settings.ArchiveDir)
	}
	if len(settings.SkipFolders) == 0 {
		t.Error("unset skip_folders must keep defaults")
	}
}

func TestLoadSettingsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("hash_threshold: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := reorg.LoadSettings(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
