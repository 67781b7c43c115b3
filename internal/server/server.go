package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"junction/internal/domain"
	"junction/internal/observability"
)

// SessionHeader carries the caller's session identity.
const SessionHeader = "Junction-Session-Id"

// DefaultMaxBodyBytes fits a 64 KiB message.
const DefaultMaxBodyBytes = 6*(64<<10) + 1<<10

// BodyLimit returns the request body cap for a given message size limit.
// Escaping in JSON can take up to six bytes per message byte.
func BodyLimit(maxMessageBytes int) int64 {
	return 6*int64(maxMessageBytes) + 1<<10
}

// Options configures a Server.
type Options struct {
	Logger   zerolog.Logger
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer // source for /metrics; nil disables the route
	LAN      bool                // reported as the health mode
	Now      func() time.Time
	// MaxBodyBytes caps request bodies; 0 selects DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// NewSessionID mints identities for callers that register without one.
	NewSessionID func() domain.SessionID
}

// Server is the HTTP transport in front of a Junction.
type Server struct {
	junction domain.Junction
	opts     Options
	started  time.Time
	engine   *gin.Engine
}

// New builds the router. The caller owns the listener.
func New(j domain.Junction, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.NewSessionID == nil {
		opts.NewSessionID = func() domain.SessionID { return domain.SessionID(uuid.NewString()) }
	}
	s := &Server{
		junction: j,
		opts:     opts,
		started:  opts.Now(),
		engine:   gin.New(),
	}
	s.engine.Use(
		gin.Recovery(),
		RequestLogger(opts.Logger),
		RequestMetrics(opts.Metrics),
		CORS(),
	)
	s.registerRoutes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }
