package style

import (
	"github.com/arthur-debert/drupalctl/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// StatusSymbol returns the marker printed before a task result.
func StatusSymbol(status types.TaskStatus) string {
	switch status {
	case types.TaskStatusSuccess:
		return "✓"
	case types.TaskStatusFailed:
		return "✗"
	default:
		return "-"
	}
}

// StatusStyle returns the style for a task status.
func StatusStyle(status types.TaskStatus) lipgloss.Style {
	switch status {
	case types.TaskStatusSuccess:
		return SuccessStyle
	case types.TaskStatusFailed:
		return ErrorStyle
	default:
		return MutedStyle
	}
}
