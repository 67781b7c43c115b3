package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// register: join the junction; prints alias, peer count and session id.
func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "register",
		Short:   "Join the junction and get an alias",
		Args:    cobra.NoArgs,
		PreRunE: connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()

			res, err := client.Register(ctx)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "export %s=%s\n", envSession, res.SessionID)
			return nil
		},
	}
}
