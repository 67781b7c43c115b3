package crypto

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	KeyBytes   = chacha20poly1305.KeySize
	NonceBytes = chacha20poly1305.NonceSizeX
)

// ErrWipedKey is returned when sealing or opening with a key that was wiped.
var ErrWipedKey = errors.New("mailbox key wiped")

// MailboxKey is the symmetric key a session's inbox is sealed under.
type MailboxKey struct {
	k     [KeyBytes]byte
	wiped bool
}

// NewMailboxKey returns a fresh random key.
func NewMailboxKey() (*MailboxKey, error) {
	key := &MailboxKey{}
	if _, err := rand.Read(key.k[:]); err != nil {
		return nil, err
	}
	return key, nil
}

// Sealed is a queued body: nonce plus ciphertext.
type Sealed struct {
	Nonce  [NonceBytes]byte
	Cipher []byte
}

// Seal encrypts plaintext, binding ad (the sender alias) as associated data.
func (m *MailboxKey) Seal(plaintext, ad []byte) (Sealed, error) {
	if m.wiped {
		return Sealed{}, ErrWipedKey
	}
	aead, err := chacha20poly1305.NewX(m.k[:])
	if err != nil {
		return Sealed{}, err
	}
	var out Sealed
	if _, err := rand.Read(out.Nonce[:]); err != nil {
		return Sealed{}, err
	}
	out.Cipher = aead.Seal(nil, out.Nonce[:], plaintext, ad)
	return out, nil
}

// Open decrypts s. The ad must match what was passed to Seal.
func (m *MailboxKey) Open(s Sealed, ad []byte) ([]byte, error) {
	if m.wiped {
		return nil, ErrWipedKey
	}
	aead, err := chacha20poly1305.NewX(m.k[:])
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, s.Nonce[:], s.Cipher, ad)
}

// Wipe overwrites the key. Further Seal/Open calls fail.
func (m *MailboxKey) Wipe() {
	Wipe(m.k[:])
	m.wiped = true
}

// Wiped reports whether Wipe has been called.
func (m *MailboxKey) Wiped() bool { return m.wiped }

// Wipe zeroes the ciphertext and nonce.
func (s *Sealed) Wipe() {
	Wipe(s.Cipher)
	Wipe(s.Nonce[:])
	s.Cipher = nil
}
