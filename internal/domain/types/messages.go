package types

import "time"

// Message is a queued note from one peer to another.
type Message struct {
	From       Alias     `json:"from"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"receivedAt"`
}
