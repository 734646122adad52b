package commands

import (
	"github.com/spf13/cobra"

	"github.com/modkit-dev/modkit/internal/core/domain"
)

func (c *CLI) newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <object> <item>",
		Short: "Print an item's value at a given epoch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			epochName, _ := cmd.Flags().GetString("epoch")
			epoch, err := domain.ParseEpoch(epochName)
			if err != nil {
				return err
			}

			if err := c.build(cmd); err != nil {
				return err
			}

			value, err := c.app.Get(args[0], args[1], epoch)
			if err != nil {
				return err
			}
			if value == nil {
				cmd.Println("<absent>")
				return nil
			}
			cmd.Println(*value)
			return nil
		},
	}
	cmd.Flags().StringP("epoch", "e", string(domain.EpochCurrent), "Epoch to read (vanilla, patched, current, edited)")
	return cmd
}
