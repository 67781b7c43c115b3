package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)
	if s.opts.Gatherer != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := s.engine.Group("/v1", LimitBody(s.opts.MaxBodyBytes))
	v1.POST("/register", s.handleRegister)
	v1.GET("/known-hosts", s.handleKnownHosts)

	sess := v1.Group("", requireSession())
	sess.GET("/peers", s.handleListPeers)
	sess.POST("/messages", s.handleSendMessage)
	sess.POST("/messages/read", s.handleReadMessages)
	sess.DELETE("/session", s.handleDisconnect)
}
