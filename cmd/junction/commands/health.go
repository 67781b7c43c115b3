package commands

import (
	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "health",
		Short:   "Print the junction's health",
		Args:    cobra.NoArgs,
		PreRunE: connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()

			h, err := client.Health(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), h)
		},
	}
}
