package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func peersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "peers",
		Short:   "List the other connected peers",
		Args:    cobra.NoArgs,
		PreRunE: requireSession,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()

			peers, err := client.ListPeers(ctx)
			if err != nil {
				return err
			}
			if len(peers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No other peers connected.")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), peers)
		},
	}
}
