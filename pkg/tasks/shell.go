package tasks

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	drupalerrors "github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/logging"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Shell runs a command line with the in-process POSIX shell interpreter.
type Shell struct {
	Command string
	Dir     string

	// Env defaults to the current process environment.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Description implements types.Task.
func (t *Shell) Description() string {
	return "Run " + t.Command
}

// Run implements types.Task. A non-zero exit status fails with
// COMMAND_FAILED and an exit_code detail.
func (t *Shell) Run(ctx context.Context) error {
	logger := logging.GetLogger("tasks.shell")

	prog, err := syntax.NewParser().Parse(strings.NewReader(t.Command), "")
	if err != nil {
		return drupalerrors.Wrapf(err, drupalerrors.ErrTaskInvalid, "failed to parse command %q", t.Command).
			WithDetail("command", t.Command)
	}

	env := t.Env
	if env == nil {
		env = os.Environ()
	}
	stdout, stderr := t.Stdout, t.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(t.Stdin, stdout, stderr),
	}
	if t.Dir != "" {
		opts = append(opts, interp.Dir(t.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return drupalerrors.Wrap(err, drupalerrors.ErrInternal, "failed to create shell interpreter")
	}

	logger.Debug().Str("command", t.Command).Str("dir", t.Dir).Msg("Running shell command")

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return drupalerrors.Newf(drupalerrors.ErrCommandFailed, "command %q exited with status %d", t.Command, int(exitStatus)).
				WithDetail("command", t.Command).
				WithDetail("exit_code", int(exitStatus))
		}
		return drupalerrors.Wrapf(err, drupalerrors.ErrCommandFailed, "command %q failed", t.Command).
			WithDetail("command", t.Command)
	}
	return nil
}
