// Package ui renders command reports, errors and notices in terminal, plain
// text or JSON form.
package ui

import (
	"io"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/types"
	"github.com/arthur-debert/drupalctl/pkg/ui/json"
	"github.com/arthur-debert/drupalctl/pkg/ui/terminal"
	"github.com/arthur-debert/drupalctl/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderReport renders the task results of a command
	RenderReport(report *types.Report) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error

	// RenderWarning renders a warning, e.g. a deprecated option
	RenderWarning(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
