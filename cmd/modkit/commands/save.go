package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Resynchronize and rewrite the edited-attributes file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.build(cmd); err != nil {
				return err
			}
			return c.app.Save(cmd.Context())
		},
	}
}
