package types

// SessionID is the opaque identity the transport assigns to a connection.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// Alias is the human-readable name a peer is known by while it is connected.
type Alias string

// String returns the string form of the alias.
func (a Alias) String() string { return string(a) }
