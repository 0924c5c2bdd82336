package reorg

import (
	"fmt"
	"strings"
)

// MaxPromptFiles caps how many scanned files are rendered into a prompt,
// keeping the text within sane token limits for suggestion engines.
const MaxPromptFiles = 30

// BuildPrompt renders scanned file metadata into the prompt text consumed by
// an external suggestion engine. The expected response format matches what
// ParsePlan accepts. Pure string construction; no network involved.
func BuildPrompt(files []ScannedFile) string {
	if len(files) > MaxPromptFiles {
		files = files[:MaxPromptFiles]
	}

	var lines []string
	for _, f := range files {
		lines = append(lines, fmt.Sprintf(
			"- **Name**: %s\n"+
				"  - **Relative Path**: %s\n"+
				"  - **Extension**: %s\n"+
				"  - **Size**: %.2f KB\n"+
				"  - **Modified**: %s\n"+
				"  - **Content Snippet**: %s",
			f.Name, f.RelativePath, f.Extension, f.SizeKB,
			f.Modified.Format("2006-01-02 15:04:05"), f.ContentSnippet))
	}

	return strings.TrimSpace(fmt.Sprintf(`You are a file organization assistant.

Given the following files, suggest:
1. A smart folder structure (e.g., 'Work/Finance', 'Photos', 'School/Assignments')
2. A new folder path for each file, relative to the root scanned directory
3. A short reason for each move

Use content, timestamps, and naming to group meaningfully. Your output should be JSON like:

{
  "folders": [ ... ],
  "moves": [
    {
      "file": "original_filename.ext",
      "relative_path": "original/relative/path.ext",
      "new_path": "SmartFolder/new_filename.ext",
      "reason": "why it belongs here"
    },
    ...
  ]
}

Files metadata:
%s

Your response:`, strings.Join(lines, "\n")))
}
