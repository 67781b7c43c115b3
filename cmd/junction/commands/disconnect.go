package commands

import (
	"github.com/spf13/cobra"
)

func disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "disconnect",
		Short:   "Leave the junction; the session and its mailbox are purged",
		Args:    cobra.NoArgs,
		PreRunE: requireSession,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()

			if err := client.Disconnect(ctx); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{"disconnected": true})
		},
	}
}
