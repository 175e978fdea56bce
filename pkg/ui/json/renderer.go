// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/types"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

type result struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
}

type report struct {
	Command string   `json:"command"`
	DryRun  bool     `json:"dry_run"`
	Failed  int      `json:"failed"`
	Results []result `json:"results"`
}

type errorObj struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RenderReport renders a report as JSON
func (r *Renderer) RenderReport(rep *types.Report) error {
	out := report{
		Command: rep.Command,
		DryRun:  rep.DryRun,
		Failed:  rep.Failed(),
		Results: make([]result, 0, len(rep.Results)),
	}
	for _, res := range rep.Results {
		item := result{
			Description: res.Description,
			Status:      string(res.Status),
			Message:     res.Message,
			DurationMS:  res.Duration.Milliseconds(),
		}
		if res.Error != nil {
			item.Error = res.Error.Error()
		}
		out.Results = append(out.Results, item)
	}
	return r.encoder.Encode(out)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	obj := errorObj{
		Error:   err.Error(),
		Details: errors.GetErrorDetails(err),
	}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		obj.Code = string(code)
	}
	return r.encoder.Encode(obj)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}

// RenderWarning renders a warning as JSON
func (r *Renderer) RenderWarning(msg string) error {
	return r.encoder.Encode(map[string]string{"warning": msg})
}
