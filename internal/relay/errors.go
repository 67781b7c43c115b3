package relay

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"junction/internal/domain"
)

// APIError is a non-2xx reply from the junction.
type APIError struct {
	Method  string
	URL     string
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay %s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("relay %s %s: %d %s: %s", e.Method, e.URL, e.Status, e.Code, e.Message)
}

// Unwrap maps the server's error code back to the domain sentinel.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "unknown_session", "missing_session":
		return domain.ErrUnknownSession
	case "unknown_peer":
		return domain.ErrUnknownPeer
	case "invalid_input", "too_large":
		return domain.ErrInvalidInput
	case "inbox_full":
		return domain.ErrInboxFull
	case "closed":
		return domain.ErrClosed
	default:
		return nil
	}
}

func decodeAPIError(method, url string, resp *http.Response) error {
	apiErr := &APIError{Method: method, URL: url, Status: resp.StatusCode}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	return apiErr
}
