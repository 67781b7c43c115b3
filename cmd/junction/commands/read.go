package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// read: drain the inbox. Messages are gone from the junction once printed.
func readCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "read",
		Short:   "Read and clear all pending messages",
		Args:    cobra.NoArgs,
		PreRunE: requireSession,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()

			msgs, err := client.ReadMessages(ctx)
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No messages.")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), msgs)
		},
	}
}
