// Package crypto exposes the minimal primitives used by the junction.
//
// Contents
//
//   - Per-session mailbox keys (NewMailboxKey)
//   - Sealing and opening queued message bodies with XChaCha20-Poly1305
//     (MailboxKey.Seal, MailboxKey.Open)
//   - Best-effort memory wiping for sensitive buffers (Wipe, MailboxKey.Wipe)
//
// # Notes
//
// Mailbox keys never leave the process. They exist so that purging a session
// is an explicit overwrite rather than an unlink left to the garbage
// collector: once a key is wiped, any ciphertext still referenced elsewhere is
// unreadable.
package crypto
