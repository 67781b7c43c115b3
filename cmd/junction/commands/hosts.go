package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func hostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "hosts",
		Short:   "List known junction hosts on the LAN",
		Args:    cobra.NoArgs,
		PreRunE: connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()

			hosts, err := client.KnownHosts(ctx)
			if err != nil {
				return err
			}
			if len(hosts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No known hosts configured. Set JUNCTION_KNOWN_HOSTS in the server environment to define LAN peers.")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), hosts)
		},
	}
}
