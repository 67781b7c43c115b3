// Package junction is the peer registry and mailbox engine.
//
// A Junction owns every piece of peer state: the session table, alias
// allocation, per-peer inboxes and the sweep that evicts idle sessions. The
// transport layer maps each call to a session ID and invokes one operation.
//
// Concurrency: a single mutex guards the registry. Client operations and sweep
// passes each hold it for their whole duration, so no caller can observe the
// session and alias indexes out of step or an inbox half drained.
//
// Purging a peer (Disconnect, expiry or Close) removes it from both indexes,
// wipes its mailbox key and queued ciphertexts, and drops the inbox.
package junction
