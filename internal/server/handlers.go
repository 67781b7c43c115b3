package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"junction/internal/domain"
)

const sessionKey = "junction.session"

type sendRequest struct {
	TargetAlias string `json:"target_alias"`
	Message     string `json:"message"`
}

type sendResponse struct {
	Delivered bool         `json:"delivered"`
	To        domain.Alias `json:"to"`
}

type disconnectResponse struct {
	Disconnected bool `json:"disconnected"`
}

// requireSession rejects requests without a session header.
func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			abortError(c, http.StatusBadRequest, codeMissingSession, "missing "+SessionHeader+" header")
			return
		}
		c.Set(sessionKey, domain.SessionID(id))
		c.Next()
	}
}

func sessionOf(c *gin.Context) domain.SessionID {
	return c.MustGet(sessionKey).(domain.SessionID)
}

func (s *Server) handleRegister(c *gin.Context) {
	id := domain.SessionID(c.GetHeader(SessionHeader))
	if id == "" {
		id = s.opts.NewSessionID()
	}
	res, err := s.junction.Register(id)
	if err != nil {
		writeError(c, err)
		return
	}
	res.SessionID = id
	c.Header(SessionHeader, id.String())
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleListPeers(c *gin.Context) {
	peers, err := s.junction.ListPeers(sessionOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, peers)
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, err)
			return
		}
		writeError(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	target := domain.Alias(req.TargetAlias)
	if err := s.junction.SendMessage(sessionOf(c), target, req.Message); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sendResponse{Delivered: true, To: target})
}

func (s *Server) handleReadMessages(c *gin.Context) {
	msgs, err := s.junction.ReadMessages(sessionOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (s *Server) handleKnownHosts(c *gin.Context) {
	hosts := s.junction.KnownHosts()
	for i := range hosts {
		base := "http://" + net.JoinHostPort(hosts[i].Address, strconv.Itoa(hosts[i].Port))
		hosts[i].BaseURL = base
		hosts[i].HealthURL = base + "/health"
	}
	c.JSON(http.StatusOK, hosts)
}

func (s *Server) handleDisconnect(c *gin.Context) {
	if err := s.junction.Disconnect(sessionOf(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, disconnectResponse{Disconnected: true})
}

func (s *Server) handleHealth(c *gin.Context) {
	mode := "localhost"
	if s.opts.LAN {
		mode = "lan"
	}
	c.JSON(http.StatusOK, domain.Health{
		Status:      "ok",
		Mode:        mode,
		ActivePeers: s.junction.ActivePeerCount(),
		Uptime:      int64(s.opts.Now().Sub(s.started).Seconds()),
	})
}
