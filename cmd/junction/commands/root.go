package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"junction/internal/domain"
	"junction/internal/relay"
)

const (
	envServer  = "JUNCTION_SERVER"
	envSession = "JUNCTION_SESSION"
)

var (
	serverURL string
	session   string
	timeout   time.Duration

	client *relay.HTTPClient
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "junction",
		Short:        "Rendezvous hub for agents on a shared network",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&serverURL, "server", envOr(envServer, "http://127.0.0.1:4200"), "junction base URL")
	root.PersistentFlags().StringVar(&session, "session", os.Getenv(envSession), "session id returned by register")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(
		serveCmd(),
		registerCmd(),
		peersCmd(),
		sendCmd(),
		readCmd(),
		hostsCmd(),
		disconnectCmd(),
		healthCmd(),
	)
	return root
}

// connect builds the client for a subcommand. It is used as PreRunE so that
// serve never touches it.
func connect(cmd *cobra.Command, args []string) error {
	client = relay.NewHTTP(serverURL, &http.Client{Timeout: timeout})
	if session != "" {
		client.SetSession(domain.SessionID(session))
	}
	return nil
}

// requireSession is PreRunE for commands that act as an existing peer.
func requireSession(cmd *cobra.Command, args []string) error {
	if session == "" {
		return fmt.Errorf("no session: run register first, then pass --session or set %s", envSession)
	}
	return connect(cmd, args)
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
