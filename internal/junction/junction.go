package junction

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"junction/internal/crypto"
	"junction/internal/domain"
	"junction/internal/observability"
)

const (
	DefaultSessionTimeout  = 30 * time.Minute
	DefaultSweepInterval   = time.Minute
	DefaultMaxMessageBytes = 64 << 10
)

// Options configures a Junction. Zero values select the defaults.
type Options struct {
	SessionTimeout  time.Duration
	SweepInterval   time.Duration
	KnownHosts      []domain.KnownHost
	MaxMessageBytes int
	// MaxInbox caps queued messages per peer; 0 means unbounded.
	MaxInbox int

	Now     func() time.Time
	Aliases AliasSource
	Logger  zerolog.Logger
	Metrics *observability.Metrics
}

// Junction is the peer registry and mailbox engine. It is safe for concurrent use.
type Junction struct {
	opts Options

	mu       sync.Mutex
	sessions map[domain.SessionID]*peer
	aliases  map[domain.Alias]*peer
	seq      uint64
	closed   bool

	cancel context.CancelFunc
	done   chan struct{}
}

// New constructs a Junction. The sweep timer does not run until Start.
func New(opts Options) *Junction {
	if opts.SessionTimeout <= 0 {
		opts.SessionTimeout = DefaultSessionTimeout
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.MaxMessageBytes <= 0 {
		opts.MaxMessageBytes = DefaultMaxMessageBytes
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Aliases == nil {
		opts.Aliases = defaultSource{}
	}
	opts.KnownHosts = slices.Clone(opts.KnownHosts)
	return &Junction{
		opts:     opts,
		sessions: make(map[domain.SessionID]*peer),
		aliases:  make(map[domain.Alias]*peer),
	}
}

// Register joins id to the junction and assigns it an alias.
//
// Registering a session that is already active is idempotent: the existing
// alias is returned and the session's activity timer refreshed.
func (j *Junction) Register(id domain.SessionID) (domain.RegisterResult, error) {
	if id == "" {
		return domain.RegisterResult{}, fmt.Errorf("%w: empty session id", domain.ErrInvalidInput)
	}
	key, err := crypto.NewMailboxKey()
	if err != nil {
		return domain.RegisterResult{}, fmt.Errorf("mailbox key: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		key.Wipe()
		return domain.RegisterResult{}, domain.ErrClosed
	}
	now := j.opts.Now()

	if p, ok := j.sessions[id]; ok {
		key.Wipe()
		p.lastSeenAt = now
		return domain.RegisterResult{Alias: p.alias, PeerCount: len(j.sessions) - 1}, nil
	}

	j.seq++
	p := &peer{
		id:          id,
		alias:       allocAlias(j.opts.Aliases, j.aliases),
		seq:         j.seq,
		connectedAt: now,
		lastSeenAt:  now,
		key:         key,
	}
	others := len(j.sessions)
	j.sessions[id] = p
	j.aliases[p.alias] = p

	j.opts.Metrics.RecordRegistration()
	j.opts.Logger.Info().
		Str("alias", p.alias.String()).
		Int("peers", len(j.sessions)).
		Msg("peer registered")

	return domain.RegisterResult{Alias: p.alias, PeerCount: others}, nil
}

// ListPeers returns every other active peer, oldest connection first.
func (j *Junction) ListPeers(id domain.SessionID) ([]domain.PeerInfo, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	caller, err := j.callerLocked(id)
	if err != nil {
		return nil, err
	}

	others := make([]*peer, 0, len(j.sessions)-1)
	for _, p := range j.sessions {
		if p != caller {
			others = append(others, p)
		}
	}
	slices.SortFunc(others, func(a, b *peer) int {
		if c := a.connectedAt.Compare(b.connectedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	out := make([]domain.PeerInfo, len(others))
	for i, p := range others {
		out[i] = domain.PeerInfo{Alias: p.alias, ConnectedAt: p.connectedAt}
	}
	return out, nil
}

// SendMessage queues body in target's inbox.
//
// Only the sender's activity timer is refreshed; receiving mail does not keep
// a peer alive.
func (j *Junction) SendMessage(id domain.SessionID, target domain.Alias, body string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	caller, err := j.callerLocked(id)
	if err != nil {
		return err
	}

	if body == "" {
		return fmt.Errorf("%w: empty message", domain.ErrInvalidInput)
	}
	if len(body) > j.opts.MaxMessageBytes {
		return fmt.Errorf("%w: message is %d bytes, limit %d", domain.ErrInvalidInput, len(body), j.opts.MaxMessageBytes)
	}
	if !ValidAlias(target) {
		return fmt.Errorf("%w: malformed alias %q", domain.ErrInvalidInput, target)
	}
	dst, ok := j.aliases[target]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownPeer, target)
	}
	if dst == caller {
		return fmt.Errorf("%w: cannot message yourself", domain.ErrInvalidInput)
	}
	if j.opts.MaxInbox > 0 && len(dst.inbox) >= j.opts.MaxInbox {
		return fmt.Errorf("%w: %s has %d pending", domain.ErrInboxFull, target, len(dst.inbox))
	}

	sealed, err := dst.key.Seal([]byte(body), []byte(caller.alias))
	if err != nil {
		return fmt.Errorf("seal message: %w", err)
	}
	dst.inbox = append(dst.inbox, envelope{
		from:       caller.alias,
		body:       sealed,
		receivedAt: j.opts.Now(),
	})
	j.opts.Metrics.RecordSent()
	return nil
}

// ReadMessages drains the caller's inbox in receipt order.
func (j *Junction) ReadMessages(id domain.SessionID) ([]domain.Message, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	caller, err := j.callerLocked(id)
	if err != nil {
		return nil, err
	}

	inbox := caller.inbox
	caller.inbox = nil

	out := make([]domain.Message, 0, len(inbox))
	for i := range inbox {
		env := &inbox[i]
		plain, err := caller.key.Open(env.body, []byte(env.from))
		env.body.Wipe()
		if err != nil {
			j.opts.Logger.Error().Err(err).
				Str("alias", caller.alias.String()).
				Str("from", env.from.String()).
				Msg("dropping unreadable message")
			continue
		}
		out = append(out, domain.Message{
			From:       env.from,
			Body:       string(plain),
			ReceivedAt: env.receivedAt,
		})
		crypto.Wipe(plain)
	}
	j.opts.Metrics.RecordRead(len(out))
	return out, nil
}

// KnownHosts returns the configured host list verbatim.
func (j *Junction) KnownHosts() []domain.KnownHost {
	return slices.Clone(j.opts.KnownHosts)
}

// Disconnect purges id. Unknown sessions, including every session after
// Close, are ignored so transports can call this freely during teardown.
func (j *Junction) Disconnect(id domain.SessionID) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if p, ok := j.sessions[id]; ok {
		j.purgeLocked(p, observability.ReasonDisconnect)
	}
	return nil
}

// ActivePeerCount returns the number of registered peers.
func (j *Junction) ActivePeerCount() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.sessions)
}

// callerLocked resolves id and refreshes its activity timer.
func (j *Junction) callerLocked(id domain.SessionID) (*peer, error) {
	if j.closed {
		return nil, domain.ErrClosed
	}
	p, ok := j.sessions[id]
	if !ok {
		return nil, domain.ErrUnknownSession
	}
	p.lastSeenAt = j.opts.Now()
	return p, nil
}

func (j *Junction) purgeLocked(p *peer, reason string) {
	delete(j.sessions, p.id)
	delete(j.aliases, p.alias)
	pending := len(p.inbox)
	p.wipe()

	j.opts.Metrics.RecordPurge(reason)
	j.opts.Logger.Info().
		Str("alias", p.alias.String()).
		Str("reason", reason).
		Int("discarded", pending).
		Msg("peer purged")
}

var _ domain.Junction = (*Junction)(nil)
