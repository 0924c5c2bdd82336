package reorg

import (
	"io"
	"io/fs"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/arthur-debert/reorg/pkg/reorg/filesystem"
)

// ScannedFile is the per-file metadata collected by Scan, the raw material
// suggestion engines consume when producing a Plan.
type ScannedFile struct {
	Name           string    `json:"name"`
	RelativePath   string    `json:"relative_path"`
	Extension      string    `json:"extension"`
	SizeKB         float64   `json:"size_kb"`
	Modified       time.Time `json:"modified"`
	ContentSnippet string    `json:"content_snippet,omitempty"`
}

// snippet extraction only makes sense for plainly textual formats
var snippetExtensions = map[string]bool{
	".txt": true, ".md": true, ".csv": true, ".log": true,
	".json": true, ".yaml": true, ".yml": true, ".xml": true, ".html": true,
}

// Scan walks the tree and collects file metadata, skipping the configured
// folder names and stopping once MaxScanFiles is reached. For small textual
// files it extracts a leading content snippet.
func Scan(fsys filesystem.FullFileSystem, settings Settings) ([]ScannedFile, error) {
	skip := make(map[string]bool, len(settings.SkipFolders))
	for _, name := range settings.SkipFolders {
		skip[name] = true
	}

	var files []ScannedFile
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entry, keep walking
		}
		if d.IsDir() {
			if p != "." && skip[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if len(files) >= settings.MaxScanFiles {
			return fs.SkipAll
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		file := ScannedFile{
			Name:         d.Name(),
			RelativePath: p,
			Extension:    path.Ext(p),
			SizeKB:       float64(info.Size()) / 1024,
			Modified:     info.ModTime(),
		}
		if snippetExtensions[strings.ToLower(file.Extension)] {
			file.ContentSnippet = readSnippet(fsys, p, settings.MaxSnippetChars)
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// readSnippet returns up to maxChars of valid UTF-8 from the start of a
// file, with newlines flattened. Unreadable or binary-looking content yields
// an empty snippet.
func readSnippet(fsys filesystem.ReadFS, name string, maxChars int) string {
	f, err := fsys.Open(name)
	if err != nil {
		return ""
	}
	defer func() {
		_ = f.Close()
	}()

	// ReadFull keeps going across short reads; a file smaller than the
	// buffer just ends early.
	buf := make([]byte, maxChars*4) // worst-case UTF-8 width
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return ""
	}

	text := string(buf[:n])
	if !utf8.ValidString(text) {
		// Truncation can split a rune; trim back to the last valid boundary.
		for len(text) > 0 && !utf8.ValidString(text) {
			text = text[:len(text)-1]
		}
		if !utf8.ValidString(text) {
			return ""
		}
	}

	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	runes := []rune(text)
	if len(runes) > maxChars {
		runes = runes[:maxChars]
	}
	return strings.TrimSpace(string(runes))
}
