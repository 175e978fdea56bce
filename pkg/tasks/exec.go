package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	drupalerrors "github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/logging"
)

// Command describes an external program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string

	// Background starts the program and returns without waiting for it.
	Background bool

	Stdout io.Writer
	Stderr io.Writer
}

// String returns the command line, e.g. "drush -y site-install".
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// CommandRunner runs external programs.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, c Command) error {
	logger := logging.GetLogger("tasks.exec")

	var cmd *exec.Cmd
	if c.Background {
		// Not tied to ctx: the process must outlive this invocation.
		cmd = exec.Command(c.Name, c.Args...)
	} else {
		cmd = exec.CommandContext(ctx, c.Name, c.Args...)
	}
	cmd.Dir = c.Dir
	if c.Env != nil {
		cmd.Env = c.Env
	}
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	logger.Debug().
		Str("command", c.String()).
		Str("dir", c.Dir).
		Bool("background", c.Background).
		Msg("Executing command")

	if c.Background {
		if err := cmd.Start(); err != nil {
			return drupalerrors.Wrapf(err, drupalerrors.ErrCommandFailed, "failed to start %s", c.Name).
				WithDetail("command", c.String())
		}
		logger.Info().Int("pid", cmd.Process.Pid).Str("command", c.String()).Msg("Started background process")
		return cmd.Process.Release()
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return drupalerrors.Newf(drupalerrors.ErrCommandFailed, "%s exited with status %d", c.Name, exitErr.ExitCode()).
				WithDetail("command", c.String()).
				WithDetail("exit_code", exitErr.ExitCode())
		}
		return drupalerrors.Wrapf(err, drupalerrors.ErrCommandFailed, "failed to run %s", c.Name).
			WithDetail("command", c.String())
	}
	return nil
}

// Exec runs an external program through a CommandRunner.
type Exec struct {
	Runner  CommandRunner
	Command Command
}

// Description implements types.Task.
func (t *Exec) Description() string {
	if t.Command.Background {
		return fmt.Sprintf("Start %s in background", t.Command)
	}
	return "Run " + t.Command.String()
}

// Run implements types.Task.
func (t *Exec) Run(ctx context.Context) error {
	runner := t.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	return runner.Run(ctx, t.Command)
}
