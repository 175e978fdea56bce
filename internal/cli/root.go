// Package cli builds the drupalctl command tree.
package cli

import (
	"os"

	"github.com/arthur-debert/drupalctl/internal/version"
	"github.com/arthur-debert/drupalctl/pkg/errors"
	"github.com/arthur-debert/drupalctl/pkg/logging"
	"github.com/arthur-debert/drupalctl/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbosity  int
	dryRun     bool
	workingDir string
	configs    []string
	format     string

	closeLog func()
}

// Execute runs drupalctl with the process arguments and returns its exit code.
func Execute() int {
	root, opts := newRootCmd()
	if err := run(root, opts); err != nil {
		return 1
	}
	return 0
}

// run executes root. A failure is printed on stderr by the renderer
// --format selects, falling back to automatic detection when the format
// itself is invalid.
func run(root *cobra.Command, opts *globalOptions) error {
	err := root.Execute()
	if opts.closeLog != nil {
		defer opts.closeLog()
	}
	if err == nil {
		return nil
	}

	renderer, rerr := opts.renderer(root, root.ErrOrStderr())
	if rerr != nil {
		renderer, _ = ui.NewRenderer(ui.FormatAuto, root.ErrOrStderr())
	}
	_ = renderer.RenderError(err)
	return err
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *globalOptions) {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "drupalctl",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.closeLog = logging.Setup(logging.Options{
				Verbosity: opts.verbosity,
				DryRun:    opts.dryRun,
				Console:   cmd.ErrOrStderr(),
			})
			log.Debug().Str("command", cmd.CommandPath()).Msg("Command started")

			if opts.workingDir != "" {
				if err := os.Chdir(opts.workingDir); err != nil {
					return errors.Wrapf(err, errors.ErrInvalidInput, MsgErrWorkingDir, opts.workingDir).
						WithDetail("path", opts.workingDir)
				}
				log.Debug().Str("dir", opts.workingDir).Msg("Changed working directory")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help and report incorrect usage
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVarP(&opts.workingDir, "working-dir", "d", "", MsgFlagWorkingDir)
	flags.StringArrayVarP(&opts.configs, "config", "c", nil, MsgFlagConfig)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "drupal", Title: MsgGroupDrupal})
	rootCmd.AddGroup(&cobra.Group{ID: "tools", Title: MsgGroupTools})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newDrushSetupCmd(opts))
	rootCmd.AddCommand(newPermissionsSetupCmd(opts))
	rootCmd.AddCommand(newSettingsSetupCmd(opts))
	rootCmd.AddCommand(newSiteInstallCmd(opts))
	rootCmd.AddCommand(newSitePreInstallCmd(opts))
	rootCmd.AddCommand(newSitePostInstallCmd(opts))
	rootCmd.AddCommand(newRunServerCmd(opts))
	rootCmd.AddCommand(newPHPCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := installTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd, opts
}
