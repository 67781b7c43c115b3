package commands

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"junction/internal/domain"
	"junction/internal/junction"
	"junction/internal/server"
)

func startServer(t *testing.T) string {
	t.Helper()
	t.Setenv(envServer, "")
	t.Setenv(envSession, "")
	gin.SetMode(gin.TestMode)
	j := junction.New(junction.Options{})
	ts := httptest.NewServer(server.New(j, server.Options{Logger: zerolog.Nop()}).Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = j.Close()
	})
	return ts.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	session = ""
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func registerAs(t *testing.T, base string) domain.RegisterResult {
	t.Helper()
	out, err := run(t, "register", "--server", base)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	var res domain.RegisterResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode register output %q: %v", out, err)
	}
	if res.SessionID == "" || res.Alias == "" {
		t.Fatalf("incomplete register result: %+v", res)
	}
	return res
}

func TestCLI_SendAndRead(t *testing.T) {
	base := startServer(t)
	alice := registerAs(t, base)
	bob := registerAs(t, base)

	out, err := run(t, "peers", "--server", base, "--session", alice.SessionID.String())
	if err != nil {
		t.Fatalf("peers: %v", err)
	}
	if !strings.Contains(out, bob.Alias.String()) {
		t.Fatalf("peers output %q missing %s", out, bob.Alias)
	}

	if _, err := run(t, "send", bob.Alias.String(), "hello there", "--server", base, "--session", alice.SessionID.String()); err != nil {
		t.Fatalf("send: %v", err)
	}

	out, err = run(t, "read", "--server", base, "--session", bob.SessionID.String())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msgs []domain.Message
	if err := json.Unmarshal([]byte(out), &msgs); err != nil {
		t.Fatalf("decode read output %q: %v", out, err)
	}
	if len(msgs) != 1 || msgs[0].Body != "hello there" || msgs[0].From != alice.Alias {
		t.Fatalf("messages = %+v", msgs)
	}

	out, err = run(t, "read", "--server", base, "--session", bob.SessionID.String())
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if strings.TrimSpace(out) != "No messages." {
		t.Fatalf("second read = %q", out)
	}
}

func TestCLI_DisconnectThenPeers(t *testing.T) {
	base := startServer(t)
	alice := registerAs(t, base)

	if _, err := run(t, "disconnect", "--server", base, "--session", alice.SessionID.String()); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if _, err := run(t, "peers", "--server", base, "--session", alice.SessionID.String()); err == nil {
		t.Fatal("peers after disconnect should fail")
	}
}

func TestCLI_RequiresSession(t *testing.T) {
	base := startServer(t)
	_, err := run(t, "read", "--server", base)
	if err == nil || !strings.Contains(err.Error(), "no session") {
		t.Fatalf("got %v, want no session error", err)
	}
}

func TestCLI_HostsAndHealth(t *testing.T) {
	base := startServer(t)

	out, err := run(t, "hosts", "--server", base)
	if err != nil {
		t.Fatalf("hosts: %v", err)
	}
	if !strings.HasPrefix(out, "No known hosts configured.") {
		t.Fatalf("hosts = %q", out)
	}

	out, err = run(t, "health", "--server", base)
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	var h domain.Health
	if err := json.Unmarshal([]byte(out), &h); err != nil {
		t.Fatalf("decode health %q: %v", out, err)
	}
	if h.Status != "ok" {
		t.Fatalf("health = %+v", h)
	}
}

func TestCLI_SessionFromEnv(t *testing.T) {
	base := startServer(t)
	alice := registerAs(t, base)

	t.Setenv(envSession, alice.SessionID.String())
	out, err := run(t, "read", "--server", base)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(out) != "No messages." {
		t.Fatalf("read = %q", out)
	}
}

