package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <object> <item> <value>",
		Short: "Edit an item's value and persist the delta",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.build(cmd); err != nil {
				return err
			}
			if err := c.app.Set(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			return c.app.Save(cmd.Context())
		},
	}
}
