package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"junction/internal/domain"
)

// Error codes carried in error responses.
const (
	codeUnknownSession = "unknown_session"
	codeUnknownPeer    = "unknown_peer"
	codeInvalidInput   = "invalid_input"
	codeInboxFull      = "inbox_full"
	codeClosed         = "closed"
	codeMissingSession = "missing_session"
	codeTooLarge       = "too_large"
	codeInternal       = "internal"
)

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail names the failure kind and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, codeTooLarge
	case errors.Is(err, domain.ErrUnknownSession):
		return http.StatusNotFound, codeUnknownSession
	case errors.Is(err, domain.ErrUnknownPeer):
		return http.StatusNotFound, codeUnknownPeer
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, codeInvalidInput
	case errors.Is(err, domain.ErrInboxFull):
		return http.StatusTooManyRequests, codeInboxFull
	case errors.Is(err, domain.ErrClosed):
		return http.StatusServiceUnavailable, codeClosed
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func writeError(c *gin.Context, err error) {
	status, code := classify(err)
	_ = c.Error(err)
	abortError(c, status, code, err.Error())
}

func abortError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: ErrorDetail{Code: code, Message: msg}})
}
