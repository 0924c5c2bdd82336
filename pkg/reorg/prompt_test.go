package reorg_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/reorg/pkg/reorg"
)

func TestBuildPromptIncludesFileMetadata(t *testing.T) {
	files := []reorg.ScannedFile{
		{
			Name:           "invoice.pdf",
			RelativePath:   "downloads/invoice.pdf",
			Extension:      ".pdf",
			SizeKB:         42.5,
			Modified:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			ContentSnippet: "Invoice #1234",
		},
	}

	prompt := reorg.BuildPrompt(files)

	for _, want := range []string{"invoice.pdf", "downloads/invoice.pdf", ".pdf", "Invoice #1234", `"moves"`, `"folders"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt should contain %q", want)
		}
	}
}

func TestBuildPromptCapsFileCount(t *testing.T) {
	var files []reorg.ScannedFile
	for i := 0; i < reorg.MaxPromptFiles+10; i++ {
		files = append(files, reorg.ScannedFile{
			Name:         fmt.Sprintf("file%d.txt", i),
			RelativePath: fmt.Sprintf("file%d.txt", i),
		})
	}

	prompt := reorg.BuildPrompt(files)

	if strings.Contains(prompt, fmt.Sprintf("file%d.txt", reorg.MaxPromptFiles)) {
		t.Errorf("prompt should include at most %d files", reorg.MaxPromptFiles)
	}
	if !strings.Contains(prompt, "file0.txt") {
		t.Error("prompt should include the first file")
	}
}
