package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dest>",
		Short: "Write edited fields back into copies of the current files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.build(cmd); err != nil {
				return err
			}
			return c.app.Export(cmd.Context(), args[0])
		},
	}
}
