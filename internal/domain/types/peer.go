package types

import "time"

// PeerInfo is the non-sensitive view of another connected peer.
type PeerInfo struct {
	Alias       Alias     `json:"alias"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// RegisterResult is returned when a session joins the junction.
// PeerCount counts the other peers connected at that moment.
type RegisterResult struct {
	SessionID SessionID `json:"sessionId,omitempty"`
	Alias     Alias     `json:"alias"`
	PeerCount int       `json:"peerCount"`
}

// Health is the status document served to health probes.
type Health struct {
	Status      string `json:"status"`
	Mode        string `json:"mode"`
	ActivePeers int    `json:"activePeers"`
	Uptime      int64  `json:"uptime"`
}
