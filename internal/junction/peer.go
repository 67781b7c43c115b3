package junction

import (
	"time"

	"junction/internal/crypto"
	"junction/internal/domain"
)

type envelope struct {
	from       domain.Alias
	body       crypto.Sealed
	receivedAt time.Time
}

type peer struct {
	id          domain.SessionID
	alias       domain.Alias
	seq         uint64
	connectedAt time.Time
	lastSeenAt  time.Time
	key         *crypto.MailboxKey
	inbox       []envelope
}

// wipe destroys the key and every queued ciphertext.
func (p *peer) wipe() {
	for i := range p.inbox {
		p.inbox[i].body.Wipe()
	}
	p.inbox = nil
	p.key.Wipe()
}
