package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/logging"
	"github.com/arthur-debert/drupalctl/pkg/types"
)

// Results is the ordered outcome of a collection run.
type Results []types.TaskResult

// Failed returns the results of tasks that failed.
func (r Results) Failed() []types.TaskResult {
	var failed []types.TaskResult
	for _, result := range r {
		if result.Status == types.TaskStatusFailed {
			failed = append(failed, result)
		}
	}
	return failed
}

// Err returns the error of the first failed task, if any.
func (r Results) Err() error {
	for _, result := range r {
		if result.Status == types.TaskStatusFailed {
			return result.Error
		}
	}
	return nil
}

// Collection runs tasks sequentially. It is itself a task, so collections nest;
// results of nested collections are flattened into the parent's results.
type Collection struct {
	Name  string
	Tasks []types.Task

	// ContinueOnError runs the remaining tasks after a failure.
	ContinueOnError bool

	// DryRun records every task as skipped without running it.
	DryRun bool

	results Results
}

// NewCollection creates a collection of tasks.
func NewCollection(name string, tasks ...types.Task) *Collection {
	return &Collection{Name: name, Tasks: tasks}
}

// Add appends tasks to the collection.
func (c *Collection) Add(tasks ...types.Task) *Collection {
	c.Tasks = append(c.Tasks, tasks...)
	return c
}

// Description implements types.Task.
func (c *Collection) Description() string {
	if c.Name == "" {
		return fmt.Sprintf("Run %d tasks", len(c.Tasks))
	}
	return c.Name
}

// Results returns the results of the last run.
func (c *Collection) Results() Results {
	return c.results
}

// Run implements types.Task. It returns the error of the first failed task.
func (c *Collection) Run(ctx context.Context) error {
	logger := logging.GetLogger("tasks")
	c.results = make(Results, 0, len(c.Tasks))

	var firstErr error
	for i, task := range c.Tasks {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrTaskFailed, "task collection cancelled").
				WithDetail("collection", c.Description())
		}

		if nested, ok := task.(*Collection); ok {
			nested.DryRun = nested.DryRun || c.DryRun
			err := nested.Run(ctx)
			c.results = append(c.results, nested.Results()...)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			if err != nil && !c.ContinueOnError {
				c.skipRemaining(i + 1)
				return err
			}
			continue
		}

		result := c.runTask(ctx, task)
		c.results = append(c.results, result)
		if result.Status != types.TaskStatusFailed {
			continue
		}
		if firstErr == nil {
			firstErr = result.Error
		}
		if !c.ContinueOnError {
			logger.Debug().
				Str("collection", c.Description()).
				Int("remaining", len(c.Tasks)-i-1).
				Msg("Stopping collection after failure")
			c.skipRemaining(i + 1)
			return result.Error
		}
	}
	return firstErr
}

func (c *Collection) runTask(ctx context.Context, task types.Task) types.TaskResult {
	logger := logging.GetLogger("tasks")
	start := time.Now()

	logger.Debug().
		Str("task", fmt.Sprintf("%T", task)).
		Str("description", task.Description()).
		Bool("dry_run", c.DryRun).
		Msg("Running task")

	if c.DryRun {
		return types.TaskResult{
			Description: task.Description(),
			Status:      types.TaskStatusSkipped,
			Message:     "Dry run - no changes made",
			Duration:    time.Since(start),
		}
	}

	if err := task.Run(ctx); err != nil {
		logger.Error().
			Err(err).
			Str("task", task.Description()).
			Msg("Task failed")

		return types.TaskResult{
			Description: task.Description(),
			Status:      types.TaskStatusFailed,
			Error:       err,
			Duration:    time.Since(start),
		}
	}

	logger.Info().
		Str("task", task.Description()).
		Dur("duration", time.Since(start)).
		Msg("Task completed")

	return types.TaskResult{
		Description: task.Description(),
		Status:      types.TaskStatusSuccess,
		Duration:    time.Since(start),
	}
}

// skipRemaining records tasks after a failure as skipped.
func (c *Collection) skipRemaining(from int) {
	for _, task := range c.Tasks[from:] {
		c.results = append(c.results, types.TaskResult{
			Description: task.Description(),
			Status:      types.TaskStatusSkipped,
			Message:     "Skipped after previous failure",
		})
	}
}
