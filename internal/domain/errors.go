package domain

import "errors"

var (
	// ErrUnknownSession indicates the caller's session has no active record:
	// it never registered, or it was disconnected or evicted since.
	ErrUnknownSession = errors.New("unknown session")

	// ErrUnknownPeer indicates a target alias does not resolve to an active peer.
	ErrUnknownPeer = errors.New("unknown peer")

	// ErrInvalidInput covers empty or oversized bodies and malformed aliases.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInboxFull is returned when the target's inbox is at its configured cap.
	ErrInboxFull = errors.New("inbox full")

	// ErrClosed is returned by every operation once the junction has shut down.
	ErrClosed = errors.New("junction closed")
)
