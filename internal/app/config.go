package app

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"junction/internal/domain"
	"junction/internal/junction"
)

// Environment variables read by LoadConfig.
const (
	EnvConfig          = "JUNCTION_CONFIG"
	EnvHost            = "JUNCTION_HOST"
	EnvPort            = "JUNCTION_PORT"
	EnvSessionTimeout  = "JUNCTION_SESSION_TIMEOUT_MS"
	EnvSweepInterval   = "JUNCTION_SWEEP_INTERVAL_MS"
	EnvKnownHosts      = "JUNCTION_KNOWN_HOSTS"
	EnvMaxMessageBytes = "JUNCTION_MAX_MESSAGE_BYTES"
	EnvMaxInbox        = "JUNCTION_MAX_INBOX"
	EnvLogLevel        = "JUNCTION_LOG_LEVEL"
)

const DefaultPort = 4200

// Config holds runtime wiring options for building the app.
type Config struct {
	Host            string             // bind address; 0.0.0.0 exposes the junction to the LAN
	Port            int                // listen port
	SessionTimeout  time.Duration      // idle time after which a peer is evicted
	SweepInterval   time.Duration      // how often idle peers are looked for
	KnownHosts      []domain.KnownHost // advisory list returned to clients
	MaxMessageBytes int
	MaxInbox        int // 0 means unbounded
	LogLevel        string
}

// fileConfig mirrors the TOML layout. Durations are given in milliseconds to
// match the environment variables.
type fileConfig struct {
	Host             *string            `toml:"host"`
	Port             *int               `toml:"port"`
	SessionTimeoutMS *int64             `toml:"session_timeout_ms"`
	SweepIntervalMS  *int64             `toml:"sweep_interval_ms"`
	MaxMessageBytes  *int               `toml:"max_message_bytes"`
	MaxInbox         *int               `toml:"max_inbox"`
	LogLevel         *string            `toml:"log_level"`
	KnownHosts       []domain.KnownHost `toml:"known_hosts"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            DefaultPort,
		SessionTimeout:  junction.DefaultSessionTimeout,
		SweepInterval:   junction.DefaultSweepInterval,
		MaxMessageBytes: junction.DefaultMaxMessageBytes,
		LogLevel:        "info",
	}
}

// LoadConfig builds a Config from defaults, the TOML file at path (or
// $JUNCTION_CONFIG when path is empty), then environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if fc.Host != nil {
		c.Host = *fc.Host
	}
	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if fc.SessionTimeoutMS != nil {
		c.SessionTimeout = time.Duration(*fc.SessionTimeoutMS) * time.Millisecond
	}
	if fc.SweepIntervalMS != nil {
		c.SweepInterval = time.Duration(*fc.SweepIntervalMS) * time.Millisecond
	}
	if fc.MaxMessageBytes != nil {
		c.MaxMessageBytes = *fc.MaxMessageBytes
	}
	if fc.MaxInbox != nil {
		c.MaxInbox = *fc.MaxInbox
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	for i := range fc.KnownHosts {
		if fc.KnownHosts[i].Port == 0 {
			fc.KnownHosts[i].Port = DefaultPort
		}
	}
	if fc.KnownHosts != nil {
		c.KnownHosts = fc.KnownHosts
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvHost); v != "" {
		c.Host = v
	}
	if err := envInt(getenv, EnvPort, &c.Port); err != nil {
		return err
	}
	if err := envMillis(getenv, EnvSessionTimeout, &c.SessionTimeout); err != nil {
		return err
	}
	if err := envMillis(getenv, EnvSweepInterval, &c.SweepInterval); err != nil {
		return err
	}
	if err := envInt(getenv, EnvMaxMessageBytes, &c.MaxMessageBytes); err != nil {
		return err
	}
	if err := envInt(getenv, EnvMaxInbox, &c.MaxInbox); err != nil {
		return err
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvKnownHosts); strings.TrimSpace(v) != "" {
		hosts, err := ParseKnownHosts(v)
		if err != nil {
			return err
		}
		c.KnownHosts = hosts
	}
	return nil
}

// Validate rejects settings the junction cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.SessionTimeout <= 0 {
		errs = append(errs, errors.New("session timeout must be positive"))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, errors.New("sweep interval must be positive"))
	}
	if c.MaxMessageBytes <= 0 {
		errs = append(errs, errors.New("max message bytes must be positive"))
	}
	if c.MaxInbox < 0 {
		errs = append(errs, errors.New("max inbox must not be negative"))
	}
	return errors.Join(errs...)
}

// LAN reports whether the junction listens on every interface.
func (c Config) LAN() bool { return c.Host == "0.0.0.0" }

// Addr returns the host:port listen address.
func (c Config) Addr() string { return net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) }

// ParseKnownHosts parses "name=ip[:port],..." entries. The port defaults to 4200.
func ParseKnownHosts(raw string) ([]domain.KnownHost, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []domain.KnownHost
	for _, entry := range strings.Split(raw, ",") {
		name, hostPort, ok := strings.Cut(strings.TrimSpace(entry), "=")
		name, hostPort = strings.TrimSpace(name), strings.TrimSpace(hostPort)
		if !ok || name == "" || hostPort == "" {
			return nil, fmt.Errorf("invalid %s entry %q: expected name=ip or name=ip:port", EnvKnownHosts, entry)
		}
		address, portStr := splitHostPort(hostPort)
		if address == "" {
			return nil, fmt.Errorf("invalid %s entry %q: empty address", EnvKnownHosts, entry)
		}
		port := DefaultPort
		if portStr != "" {
			p, err := strconv.Atoi(portStr)
			if err != nil {
				return nil, fmt.Errorf("invalid %s entry %q: bad port: %w", EnvKnownHosts, entry, err)
			}
			port = p
		}
		out = append(out, domain.KnownHost{Name: name, Address: address, Port: port})
	}
	return out, nil
}

// splitHostPort accepts "ip", "ip:", "ip:port", "[v6]:port" and a bare IPv6
// address. An empty port string means the default.
func splitHostPort(s string) (host, port string) {
	if strings.HasPrefix(s, "[") {
		if h, p, err := net.SplitHostPort(s); err == nil {
			return h, p
		}
		return strings.Trim(strings.TrimSuffix(s, ":"), "[]"), ""
	}
	if strings.Count(s, ":") != 1 {
		return s, ""
	}
	host, port, _ = strings.Cut(s, ":")
	return strings.TrimSpace(host), strings.TrimSpace(port)
}

func envInt(getenv func(string) string, key string, dst *int) error {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envMillis(getenv func(string) string, key string, dst *time.Duration) error {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = time.Duration(n) * time.Millisecond
	return nil
}
