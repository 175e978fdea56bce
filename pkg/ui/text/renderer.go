// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"sort"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/style"
	"github.com/arthur-debert/drupalctl/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderReport lists every task result followed by a summary line.
func (r *Renderer) RenderReport(report *types.Report) error {
	return r.println(ReportLines(report)...)
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	return r.println(ErrorLines(err)...)
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(msg)
}

// RenderWarning renders a warning line
func (r *Renderer) RenderWarning(msg string) error {
	return r.println("Warning: " + msg)
}

func (r *Renderer) println(lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

// ReportLines lays out a report without styling.
func ReportLines(report *types.Report) []string {
	var lines []string
	for _, res := range report.Results {
		line := fmt.Sprintf("  %s %s", style.StatusSymbol(res.Status), res.Description)
		if res.Message != "" {
			line += " (" + res.Message + ")"
		}
		lines = append(lines, line)
		if res.Error != nil {
			lines = append(lines, "      "+res.Error.Error())
		}
	}
	return append(lines, Summary(report))
}

// Summary returns e.g. "settings-setup: 4 tasks, 1 failed".
func Summary(report *types.Report) string {
	s := fmt.Sprintf("%s: %d tasks", report.Command, len(report.Results))
	if failed := report.Failed(); failed > 0 {
		s += fmt.Sprintf(", %d failed", failed)
	}
	if report.DryRun {
		s += " (dry run, no changes made)"
	}
	return s
}

// ErrorLines returns the error message followed by its details, sorted by key.
func ErrorLines(err error) []string {
	lines := []string{"Error: " + err.Error()}
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %s: %v", k, details[k]))
	}
	return lines
}
