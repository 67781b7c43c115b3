package commands

import (
	"github.com/spf13/cobra"

	"junction/internal/domain"
)

// send <alias> <message>: queue a message for another peer.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "send <alias> <message>",
		Short:   "Send a message to a peer by alias",
		Args:    cobra.ExactArgs(2),
		PreRunE: requireSession,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()

			to := domain.Alias(args[0])
			if err := client.SendMessage(ctx, to, args[1]); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"delivered": true, "to": to})
		},
	}
}
