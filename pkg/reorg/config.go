package reorg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the tunable knobs of the engine. Zero-value fields in a
// loaded file fall back to the defaults.
type Settings struct {
	// HashThreshold is the size in bytes below which source files are
	// hashed into the backup manifest.
	HashThreshold int64 `yaml:"hash_threshold"`

	// ManifestPath is where the active backup manifest lives.
	ManifestPath string `yaml:"manifest_path"`

	// ArchiveDir is where consumed manifests are retained.
	ArchiveDir string `yaml:"archive_dir"`

	// ResultsPath, when set, receives the machine-readable record of each
	// execution or revert batch.
	ResultsPath string `yaml:"results_path"`

	// MaxScanFiles caps how many files a directory scan collects.
	MaxScanFiles int `yaml:"max_scan_files"`

	// MaxSnippetChars caps the content snippet extracted per scanned file.
	MaxSnippetChars int `yaml:"max_snippet_chars"`

	// SkipFolders are directory names the scanner never descends into.
	SkipFolders []string `yaml:"skip_folders"`
}

// DefaultSettings returns the engine defaults.
func DefaultSettings() Settings {
	return Settings{
		HashThreshold:   DefaultHashThreshold,
		ManifestPath:    "data/backup_manifest.json",
		ArchiveDir:      "data/backup_archives",
		ResultsPath:     "data/organization_results.json",
		MaxScanFiles:    1000,
		MaxSnippetChars: 200,
		SkipFolders: []string{
			".git", ".svn", ".hg",
			"node_modules", "__pycache__", ".vscode", ".idea",
			"venv", "env", ".env",
			"dist", "build", "target", "out",
			".DS_Store",
		},
	}
}

// LoadSettings overlays a YAML settings file onto the defaults. A missing
// file is not an error; the defaults are returned unchanged.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var overlay Settings
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return settings, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	if overlay.HashThreshold > 0 {
		settings.HashThreshold = overlay.HashThreshold
	}
	if overlay.ManifestPath != "" {
		settings.ManifestPath = overlay.ManifestPath
	}
	if overlay.ArchiveDir != "" {
		settings.ArchiveDir = overlay.ArchiveDir
	}
	if overlay.ResultsPath != "" {
		settings.ResultsPath = overlay.ResultsPath
	}
	if overlay.MaxScanFiles > 0 {
		settings.MaxScanFiles = overlay.MaxScanFiles
	}
	if overlay.MaxSnippetChars > 0 {
		settings.MaxSnippetChars = overlay.MaxSnippetChars
	}
	if overlay.SkipFolders != nil {
		settings.SkipFolders = overlay.SkipFolders
	}

	return settings, nil
}
