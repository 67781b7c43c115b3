package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"junction/internal/app"
	"junction/internal/observability"
)

func serveCmd() *cobra.Command {
	var (
		configPath     string
		host           string
		port           int
		sessionTimeout time.Duration
		sweepInterval  time.Duration
		knownHosts     string
		logLevel       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a junction",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}

			// Flags win over file and environment.
			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Host = host
			}
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("session-timeout") {
				cfg.SessionTimeout = sessionTimeout
			}
			if flags.Changed("sweep-interval") {
				cfg.SweepInterval = sweepInterval
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("known-hosts") {
				if cfg.KnownHosts, err = app.ParseKnownHosts(knownHosts); err != nil {
					return err
				}
			}

			gin.SetMode(gin.ReleaseMode)
			logger := observability.InitLogger("junction", cfg.LogLevel)

			w, err := app.NewWire(cfg, logger)
			if err != nil {
				return err
			}
			ln, err := w.Listen()
			if err != nil {
				_ = w.Junction.Close()
				return err
			}

			mode := "localhost only"
			if cfg.LAN() {
				mode = "LAN (accessible from network)"
			}
			logger.Info().
				Str("addr", ln.Addr().String()).
				Str("mode", mode).
				Dur("session_timeout", cfg.SessionTimeout).
				Dur("sweep_interval", cfg.SweepInterval).
				Msg("junction listening")
			for _, h := range cfg.KnownHosts {
				logger.Info().Str("name", h.Name).Str("address", h.Address).Int("port", h.Port).Msg("known host")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return w.Serve(ctx, ln)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "TOML config file (default $JUNCTION_CONFIG)")
	f.StringVar(&host, "host", "127.0.0.1", "bind address; 0.0.0.0 serves the LAN")
	f.IntVar(&port, "port", app.DefaultPort, "listen port")
	f.DurationVar(&sessionTimeout, "session-timeout", 30*time.Minute, "evict peers idle longer than this")
	f.DurationVar(&sweepInterval, "sweep-interval", time.Minute, "how often to look for idle peers")
	f.StringVar(&knownHosts, "known-hosts", "", "advisory hosts as name=ip[:port],...")
	f.StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn, error or off")
	return cmd
}
