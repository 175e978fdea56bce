package cli

import (
	"github.com/arthur-debert/drupalctl/pkg/filesystem"
	"github.com/arthur-debert/drupalctl/pkg/phpblock"
	"github.com/arthur-debert/drupalctl/pkg/tasks"
	"github.com/spf13/cobra"
)

func newPHPCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "php",
		Short:   MsgPHPShort,
		Long:    MsgPHPLong,
		Example: MsgPHPExample,
		GroupID: "tools",
	}

	cmd.AddCommand(newPHPModeCmd(opts, phpblock.ModeWrite, MsgPHPWriteShort))
	cmd.AddCommand(newPHPModeCmd(opts, phpblock.ModePrepend, MsgPHPPrependShort))
	cmd.AddCommand(newPHPModeCmd(opts, phpblock.ModeAppend, MsgPHPAppendShort))
	return cmd
}

func newPHPModeCmd(opts *globalOptions, mode phpblock.Mode, short string) *cobra.Command {
	var (
		file   string
		key    string
		labels phpblock.Labels
	)

	cmd := &cobra.Command{
		Use:   mode.String(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, false)
			if err != nil {
				return err
			}

			return e.run(tasks.NewCollection(e.name(), &tasks.WritePHP{
				FS:        filesystem.NewOS(),
				Path:      file,
				Source:    e.store.Tree(),
				ConfigKey: key,
				Labels:    labels,
				Mode:      mode,
				Locker:    tasks.DefaultLocker,
			}))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", MsgFlagFile)
	cmd.Flags().StringVarP(&key, "config-key", "k", "", MsgFlagConfigKey)
	cmd.Flags().StringVar(&labels.Start, "block-start", phpblock.DefaultBlockStart, MsgFlagBlockStart)
	cmd.Flags().StringVar(&labels.End, "block-end", phpblock.DefaultBlockEnd, MsgFlagBlockEnd)
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("config-key")
	return cmd
}
