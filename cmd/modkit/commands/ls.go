package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [object]",
		Short: "List objects, or the items of one object",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.build(cmd); err != nil {
				return err
			}

			if len(args) == 1 {
				items, err := c.app.Items(args[0])
				if err != nil {
					return err
				}
				for _, item := range items {
					cmd.Println(item)
				}
				return nil
			}

			modifiedOnly, _ := cmd.Flags().GetBool("modified")
			if modifiedOnly {
				value, err := c.app.Category("modified")
				if err != nil {
					return err
				}
				names, _ := value.([]string)
				for _, name := range names {
					cmd.Println(name)
				}
				return nil
			}

			for _, name := range c.app.List() {
				cmd.Println(name)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("modified", "m", false, "Only list objects carrying edits")
	return cmd
}
