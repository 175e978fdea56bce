package cli

import (
	"io"
	"strings"

	"github.com/arthur-debert/drupalctl/pkg/config"
	"github.com/arthur-debert/drupalctl/pkg/drupal"
	"github.com/arthur-debert/drupalctl/pkg/filesystem"
	"github.com/arthur-debert/drupalctl/pkg/logging"
	"github.com/arthur-debert/drupalctl/pkg/tasks"
	"github.com/arthur-debert/drupalctl/pkg/types"
	"github.com/arthur-debert/drupalctl/pkg/ui"
	"github.com/spf13/cobra"
)

// env is what a running command needs: its configuration and renderers.
type env struct {
	cmd   *cobra.Command
	opts  *globalOptions
	store *config.Store

	out  ui.Renderer // reports, on stdout
	diag ui.Renderer // warnings, on stderr
}

// newEnv loads configuration and sets up output for cmd. Drupal commands pass
// validate so missing or invalid drupal.* values fail before any task runs.
func newEnv(cmd *cobra.Command, opts *globalOptions, validate bool) (*env, error) {
	out, err := opts.renderer(cmd, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	diag, err := opts.renderer(cmd, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	store, err := config.Load(config.LoadOptions{Files: opts.configs})
	if err != nil {
		return nil, err
	}
	if validate {
		if err := store.Config().Validate(); err != nil {
			return nil, err
		}
	}

	return &env{cmd: cmd, opts: opts, store: store, out: out, diag: diag}, nil
}

func (e *env) drupal() *drupal.Commands {
	return &drupal.Commands{
		FS:     filesystem.NewOS(),
		Store:  e.store,
		Runner: tasks.ExecRunner{},
		Locker: tasks.DefaultLocker,
		Stdout: e.cmd.OutOrStdout(),
		Stderr: e.cmd.ErrOrStderr(),
		Warn:   func(msg string) { _ = e.diag.RenderWarning(msg) },
	}
}

// name is the command path without the program name, e.g. "php write".
func (e *env) name() string {
	return strings.TrimPrefix(e.cmd.CommandPath(), e.cmd.Root().Name()+" ")
}

// run executes collection, honouring --dry-run, and renders its report.
// The first task error is returned after the report is printed.
func (e *env) run(collection *tasks.Collection) error {
	logger := logging.GetLogger("cli")
	done := logging.LogOperationStart(logger, e.name())
	defer done()

	collection.DryRun = e.opts.dryRun
	err := collection.Run(e.cmd.Context())

	report := &types.Report{
		Command: e.name(),
		DryRun:  e.opts.dryRun,
		Results: collection.Results(),
	}
	if rerr := e.out.RenderReport(report); rerr != nil && err == nil {
		err = rerr
	}
	return err
}

// renderer resolves --format, or DRUPALCTL_FORMAT when the flag is not
// given, for w.
func (o *globalOptions) renderer(cmd *cobra.Command, w io.Writer) (ui.Renderer, error) {
	explicit := false
	if flag := cmd.Flag("format"); flag != nil {
		explicit = flag.Changed
	}
	format, err := ui.Resolve(o.format, explicit, w)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w)
}

func stringFlag(cmd *cobra.Command, name string, target *string) {
	if cmd.Flags().Changed(name) {
		*target, _ = cmd.Flags().GetString(name)
	}
}

func boolFlag(cmd *cobra.Command, name string, target *bool) {
	if cmd.Flags().Changed(name) {
		*target, _ = cmd.Flags().GetBool(name)
	}
}
