package types

// Report is what a command hands to a renderer once its tasks have run.
type Report struct {
	// Command is the command name, e.g. "settings-setup"
	Command string

	// DryRun is set when tasks were listed but not run
	DryRun bool

	Results []TaskResult
}

// Failed returns the number of failed results.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == TaskStatusFailed {
			n++
		}
	}
	return n
}
