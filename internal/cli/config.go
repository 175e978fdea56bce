package cli

import (
	"fmt"

	"github.com/arthur-debert/drupalctl/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "tools",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get [key]",
		Short: MsgConfigGetShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, false)
			if err != nil {
				return err
			}

			var text string
			if len(args) == 0 {
				text, err = config.MarshalYAML(e.store.Tree())
			} else {
				text, err = e.store.YAML(args[0])
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "origin <key>",
		Short: MsgConfigOriginShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts, false)
			if err != nil {
				return err
			}

			origins, err := e.store.Origins(args[0])
			if err != nil {
				return err
			}
			for _, origin := range origins {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), origin); err != nil {
					return err
				}
			}
			return nil
		},
	})
	return cmd
}
