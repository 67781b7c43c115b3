package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"junction/internal/junction"
	"junction/internal/observability"
	"junction/internal/server"
)

const shutdownGrace = 5 * time.Second

// Wire bundles the engine, metrics and transport for one junction process.
type Wire struct {
	Config   Config
	Logger   zerolog.Logger
	Registry *prometheus.Registry
	Junction *junction.Junction
	Server   *server.Server
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, logger zerolog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	j := junction.New(junction.Options{
		SessionTimeout:  cfg.SessionTimeout,
		SweepInterval:   cfg.SweepInterval,
		KnownHosts:      cfg.KnownHosts,
		MaxMessageBytes: cfg.MaxMessageBytes,
		MaxInbox:        cfg.MaxInbox,
		Logger:          logger.With().Str("component", "junction").Logger(),
		Metrics:         metrics,
	})
	observability.RegisterActivePeers(reg, j.ActivePeerCount)

	srv := server.New(j, server.Options{
		Logger:   logger.With().Str("component", "http").Logger(),
		Metrics:  metrics,
		Gatherer: reg,
		LAN:      cfg.LAN(),

		MaxBodyBytes: server.BodyLimit(cfg.MaxMessageBytes),
	})

	return &Wire{
		Config:   cfg,
		Logger:   logger,
		Registry: reg,
		Junction: j,
		Server:   srv,
	}, nil
}

// Serve starts the sweep and serves HTTP on ln until ctx is cancelled. It then
// stops accepting requests, drains in-flight ones, and closes the junction,
// purging every peer before returning.
func (w *Wire) Serve(ctx context.Context, ln net.Listener) error {
	w.Junction.Start(ctx)

	hs := &http.Server{
		Handler:           w.Server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- hs.Serve(ln) }()

	var serveErr error
	select {
	case <-ctx.Done():
		w.Logger.Info().Msg("shutting down")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		w.Logger.Warn().Err(err).Msg("http shutdown")
	}
	if err := w.Junction.Close(); err != nil {
		return err
	}
	w.Logger.Info().Msg("junction stopped")

	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	return nil
}

// ErrPortInUse is returned by Listen when something already answers on the port.
var ErrPortInUse = errors.New("port already in use")

// Listen opens the configured address, refusing to start when another process
// already accepts connections there.
func (w *Wire) Listen() (net.Listener, error) {
	addr := w.Config.Addr()
	if PortInUse(w.Config.Host, w.Config.Port) {
		return nil, fmt.Errorf("%w: %s (kill the existing process: fuser -k %d/tcp)", ErrPortInUse, addr, w.Config.Port)
	}
	return net.Listen("tcp", addr)
}

// PortInUse reports whether a TCP connection to host:port succeeds.
func PortInUse(host string, port int) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), time.Second)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
