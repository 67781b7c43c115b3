package relay_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"junction/internal/domain"
	"junction/internal/junction"
	"junction/internal/relay"
	"junction/internal/server"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func startJunction(t *testing.T, opts junction.Options) (*junction.Junction, string) {
	t.Helper()
	j := junction.New(opts)
	ts := httptest.NewServer(server.New(j, server.Options{Logger: zerolog.Nop()}).Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = j.Close()
	})
	return j, ts.URL
}

func TestHTTPClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, base := startJunction(t, junction.Options{})

	alice := relay.NewHTTP(base+"/", nil)
	bob := relay.NewHTTP(base, nil)

	ra, err := alice.Register(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, alice.Session())
	assert.Equal(t, ra.SessionID, alice.Session())

	rb, err := bob.Register(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rb.PeerCount)

	peers, err := alice.ListPeers(ctx)
	require.NoError(t, err)
	require.Len(t, peers, 1)
	assert.Equal(t, rb.Alias, peers[0].Alias)

	require.NoError(t, alice.SendMessage(ctx, rb.Alias, "hi"))
	require.NoError(t, alice.SendMessage(ctx, rb.Alias, "again"))

	msgs, err := bob.ReadMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, ra.Alias, msgs[0].From)
	assert.Equal(t, "hi", msgs[0].Body)
	assert.Equal(t, "again", msgs[1].Body)

	msgs, err = bob.ReadMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	require.NoError(t, bob.Disconnect(ctx))
	assert.Empty(t, bob.Session())

	err = alice.SendMessage(ctx, rb.Alias, "gone?")
	require.ErrorIs(t, err, domain.ErrUnknownPeer)

	var apiErr *relay.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "unknown_peer", apiErr.Code)
}

func TestHTTPClient_ResumeSession(t *testing.T) {
	ctx := context.Background()
	_, base := startJunction(t, junction.Options{})

	first := relay.NewHTTP(base, nil)
	res, err := first.Register(ctx)
	require.NoError(t, err)

	resumed := relay.NewHTTP(base, nil)
	resumed.SetSession(res.SessionID)
	again, err := resumed.Register(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.Alias, again.Alias)
}

func TestHTTPClient_Errors(t *testing.T) {
	ctx := context.Background()
	j, base := startJunction(t, junction.Options{})

	c := relay.NewHTTP(base, nil)
	_, err := c.ListPeers(ctx)
	require.ErrorIs(t, err, domain.ErrUnknownSession, "no session header")

	c.SetSession("never-registered")
	_, err = c.ReadMessages(ctx)
	require.ErrorIs(t, err, domain.ErrUnknownSession)

	_, err = c.Register(ctx)
	require.NoError(t, err)
	require.ErrorIs(t, c.SendMessage(ctx, "Bad Alias", "x"), domain.ErrInvalidInput)

	peer, err := j.Register("other")
	require.NoError(t, err)
	err = c.SendMessage(ctx, peer.Alias, strings.Repeat("z", int(server.DefaultMaxBodyBytes)))
	require.ErrorIs(t, err, domain.ErrInvalidInput, "oversized body")
	var apiErr *relay.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.Status)

	require.NoError(t, j.Close())
	_, err = c.ListPeers(ctx)
	require.ErrorIs(t, err, domain.ErrClosed)
}

func TestHTTPClient_HealthAndHosts(t *testing.T) {
	ctx := context.Background()
	_, base := startJunction(t, junction.Options{KnownHosts: []domain.KnownHost{
		{Name: "lab", Address: "10.0.0.5", Port: 4300},
	}})

	c := relay.NewHTTP(base, nil)
	_, err := c.Register(ctx)
	require.NoError(t, err)

	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "localhost", h.Mode)
	assert.Equal(t, 1, h.ActivePeers)

	hosts, err := c.KnownHosts(ctx)
	require.NoError(t, err)
	require.Len(t, hosts, 1)
	assert.Equal(t, "http://10.0.0.5:4300/health", hosts[0].HealthURL)
}

func TestHTTPClient_ContextCancelled(t *testing.T) {
	_, base := startJunction(t, junction.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := relay.NewHTTP(base, nil).Health(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
