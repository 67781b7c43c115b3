package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"junction/internal/domain"
)

// SessionHeader must match the server's session header.
const SessionHeader = "Junction-Session-Id"

// HTTPClient talks to one junction on behalf of one session.
type HTTPClient struct {
	Base string
	HTTP *http.Client

	mu      sync.RWMutex
	session domain.SessionID
}

// NewHTTP returns a client for the junction at base. A nil httpClient selects
// http.DefaultClient.
func NewHTTP(base string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{Base: strings.TrimRight(base, "/"), HTTP: httpClient}
}

// Session returns the session id in use, if any.
func (c *HTTPClient) Session() domain.SessionID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetSession resumes an existing session, e.g. one saved by an earlier process.
func (c *HTTPClient) SetSession(id domain.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = id
}

// Register joins the junction. Without a session the server mints one, which
// the client keeps for subsequent calls.
func (c *HTTPClient) Register(ctx context.Context) (domain.RegisterResult, error) {
	var out domain.RegisterResult
	hdr, err := c.do(ctx, http.MethodPost, "/v1/register", nil, &out)
	if err != nil {
		return domain.RegisterResult{}, err
	}
	id := domain.SessionID(hdr.Get(SessionHeader))
	if id == "" {
		id = out.SessionID
	}
	c.SetSession(id)
	out.SessionID = id
	return out, nil
}

func (c *HTTPClient) ListPeers(ctx context.Context) ([]domain.PeerInfo, error) {
	var out []domain.PeerInfo
	_, err := c.do(ctx, http.MethodGet, "/v1/peers", nil, &out)
	return out, err
}

func (c *HTTPClient) SendMessage(ctx context.Context, target domain.Alias, body string) error {
	in := struct {
		TargetAlias string `json:"target_alias"`
		Message     string `json:"message"`
	}{TargetAlias: target.String(), Message: body}
	_, err := c.do(ctx, http.MethodPost, "/v1/messages", in, nil)
	return err
}

func (c *HTTPClient) ReadMessages(ctx context.Context) ([]domain.Message, error) {
	var out []domain.Message
	_, err := c.do(ctx, http.MethodPost, "/v1/messages/read", nil, &out)
	return out, err
}

func (c *HTTPClient) KnownHosts(ctx context.Context) ([]domain.KnownHost, error) {
	var out []domain.KnownHost
	_, err := c.do(ctx, http.MethodGet, "/v1/known-hosts", nil, &out)
	return out, err
}

// Disconnect leaves the junction and forgets the session.
func (c *HTTPClient) Disconnect(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodDelete, "/v1/session", nil, nil); err != nil {
		return err
	}
	c.SetSession("")
	return nil
}

func (c *HTTPClient) Health(ctx context.Context) (domain.Health, error) {
	var out domain.Health
	_, err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) (http.Header, error) {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return nil, err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := c.Session(); id != "" {
		req.Header.Set(SessionHeader, id.String())
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, decodeAPIError(method, c.Base+path, resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("relay %s %s: decode: %w", method, path, err)
		}
	}
	return resp.Header, nil
}

var _ domain.RelayClient = (*HTTPClient)(nil)
