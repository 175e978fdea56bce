// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/drupalctl/pkg/style"
	"github.com/arthur-debert/drupalctl/pkg/types"
	"github.com/arthur-debert/drupalctl/pkg/ui/text"
	"github.com/pterm/pterm"
)

// Renderer styles output with lipgloss and pterm
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderReport renders task results with a colored status marker.
func (r *Renderer) RenderReport(report *types.Report) error {
	for _, res := range report.Results {
		marker := style.StatusStyle(res.Status).Render(style.StatusSymbol(res.Status))
		line := "  " + marker + " " + res.Description
		if res.Message != "" {
			line += " " + style.MutedStyle.Render("("+res.Message+")")
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
		if res.Error != nil {
			if _, err := fmt.Fprintln(r.output, "      "+style.ErrorStyle.Render(res.Error.Error())); err != nil {
				return err
			}
		}
	}

	summary := style.TitleStyle
	if report.Failed() > 0 {
		summary = style.ErrorStyle
	}
	_, err := fmt.Fprintln(r.output, summary.Render(text.Summary(report)))
	return err
}

// RenderError renders an error in the error style, details muted
func (r *Renderer) RenderError(err error) error {
	lines := text.ErrorLines(err)
	if _, werr := fmt.Fprintln(r.output, style.ErrorStyle.Render(lines[0])); werr != nil {
		return werr
	}
	for _, line := range lines[1:] {
		if _, werr := fmt.Fprintln(r.output, style.MutedStyle.Render(line)); werr != nil {
			return werr
		}
	}
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// RenderWarning renders a warning with pterm's warning prefix
func (r *Renderer) RenderWarning(msg string) error {
	pterm.Warning.WithWriter(r.output).Println(msg)
	return nil
}
