package testutil

import (
	"context"

	"github.com/arthur-debert/drupalctl/pkg/tasks"
	"github.com/stretchr/testify/mock"
)

// MockRunner implements tasks.CommandRunner for testing
type MockRunner struct {
	mock.Mock
}

// Run records the call and returns the configured error.
func (m *MockRunner) Run(ctx context.Context, cmd tasks.Command) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// Commands returns the commands passed to Run, in order.
func (m *MockRunner) Commands() []tasks.Command {
	var out []tasks.Command
	for _, call := range m.Calls {
		if call.Method == "Run" {
			out = append(out, call.Arguments.Get(1).(tasks.Command))
		}
	}
	return out
}

// MockTask implements types.Task for testing
type MockTask struct {
	mock.Mock
	Desc string
}

// Description returns Desc.
func (m *MockTask) Description() string {
	return m.Desc
}

// Run records the call and returns the configured error.
func (m *MockTask) Run(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// NewMockTask returns a task whose Run returns err.
func NewMockTask(desc string, err error) *MockTask {
	task := &MockTask{Desc: desc}
	task.On("Run", mock.Anything).Return(err)
	return task
}
