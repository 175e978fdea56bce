package types

import (
	"context"
	"time"
)

// Task is a single unit of work run by a command or an install hook.
type Task interface {
	// Description is a short human readable summary, e.g. "Write sites/default/drushrc.php"
	Description() string

	// Run performs the work. Implementations must not retry on failure.
	Run(ctx context.Context) error
}

// TaskStatus is the outcome of a task run
type TaskStatus string

const (
	TaskStatusSuccess TaskStatus = "success"
	TaskStatusFailed  TaskStatus = "failed"
	TaskStatusSkipped TaskStatus = "skipped"
)

// TaskResult represents the outcome of running a task
type TaskResult struct {
	// Description of the task that ran
	Description string

	// Status of the run
	Status TaskStatus

	// Error contains any error that occurred during the run
	Error error

	// Message provides additional information about the result
	Message string

	// Duration is how long the task took
	Duration time.Duration
}

// Success reports whether the task completed without error.
func (r TaskResult) Success() bool {
	return r.Status == TaskStatusSuccess
}
