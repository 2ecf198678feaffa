// Package markdown renders diff run reports as Markdown files.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/postreview/svndiff/internal/domain"
)

// Writer renders run reports into Markdown files.
type Writer struct{}

// NewWriter constructs a Markdown writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write renders report to the given path, creating parent directories
// as needed.
func (w *Writer) Write(ctx context.Context, path string, report domain.DiffReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(buildContent(report)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func buildContent(report domain.DiffReport) string {
	var builder strings.Builder
	caser := cases.Title(language.English)

	builder.WriteString("# Diff Run Report\n\n")
	builder.WriteString(fmt.Sprintf("- Repository: %s\n", report.Repository.Root))
	builder.WriteString(fmt.Sprintf("- Base Path: %s\n", report.Repository.BasePath))
	builder.WriteString(fmt.Sprintf("- UUID: %s\n", report.Repository.UUID))
	builder.WriteString(fmt.Sprintf("- Mode: %s\n", caser.String(strings.ReplaceAll(report.Mode, "-", " "))))
	if report.RevisionSpec != "" {
		builder.WriteString(fmt.Sprintf("- Revisions: %s\n", report.RevisionSpec))
	}
	builder.WriteString(fmt.Sprintf("- Generated: %s\n\n", report.GeneratedAt.UTC().Format(time.RFC3339)))

	if len(report.Summary.Files) == 0 {
		builder.WriteString("No files changed.\n")
		return builder.String()
	}

	builder.WriteString(fmt.Sprintf("## Files (%d files, %d hunks)\n\n",
		report.Summary.FileCount(), report.Summary.HunkCount))
	for _, file := range report.Summary.Files {
		builder.WriteString(fmt.Sprintf("- `%s` (%d hunks)\n", file.Path, file.Hunks))
	}

	return builder.String()
}
