package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// WriteJSON writes the field set as a JSON artifact into dir and returns
// the written path. The file name carries a short unique suffix so repeated
// exports of the same report never clobber each other.
func WriteJSON(dir string, f Fields) (string, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export fields: %w", err)
	}
	return writeArtifact(dir, f, "json", data)
}

// WriteMarkdown writes a human-readable report document into dir and
// returns the written path. This is the portable fallback when no PDF
// generator is wired in; a PDF engine consumes the same Fields.
func WriteMarkdown(dir string, f Fields) (string, error) {
	var doc strings.Builder

	doc.WriteString("# Content Integrity Report\n\n")
	fmt.Fprintf(&doc, "- **File:** %s\n", f.FileName)
	if f.FileSize > 0 {
		fmt.Fprintf(&doc, "- **Size:** %d bytes\n", f.FileSize)
	}
	if f.Timestamp != "" {
		fmt.Fprintf(&doc, "- **Analyzed:** %s\n", f.Timestamp)
	}

	doc.WriteString("\n## Scores\n\n")
	doc.WriteString("| Modality | Score | Status |\n")
	doc.WriteString("|---|---|---|\n")
	fmt.Fprintf(&doc, "| Fusion | %.1f | %s |\n", f.FusionScore, f.FusionLabel)
	fmt.Fprintf(&doc, "| Video | %.1f | %s |\n", f.VideoScore, f.VideoLabel)
	fmt.Fprintf(&doc, "| Audio | %.1f | %s |\n", f.AudioScore, f.AudioLabel)
	fmt.Fprintf(&doc, "| Text | %.1f | %s |\n", f.TextScore, f.TextLabel)

	doc.WriteString("\n## Explanation\n\n")
	doc.WriteString(f.Explanation)
	doc.WriteString("\n")

	return writeArtifact(dir, f, "md", []byte(doc.String()))
}

// writeArtifact creates dir if needed and writes data under a name derived
// from the report's file name.
func writeArtifact(dir string, f Fields, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("%s-report-%s.%s", slug(f.FileName), uuid.NewString()[:8], ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export artifact: %w", err)
	}
	return path, nil
}

// slug reduces a file name to a safe artifact-name fragment.
func slug(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "analysis"
	}
	return b.String()
}
