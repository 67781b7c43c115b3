package interfaces

import domaintypes "junction/internal/domain/types"

// Junction is the registry and mailbox engine consumed by the transport layer.
type Junction interface {
	Register(id domaintypes.SessionID) (domaintypes.RegisterResult, error)
	ListPeers(id domaintypes.SessionID) ([]domaintypes.PeerInfo, error)
	SendMessage(id domaintypes.SessionID, target domaintypes.Alias, body string) error
	ReadMessages(id domaintypes.SessionID) ([]domaintypes.Message, error)
	KnownHosts() []domaintypes.KnownHost
	Disconnect(id domaintypes.SessionID) error
	ActivePeerCount() int
}
