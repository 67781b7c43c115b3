package interfaces

import (
	"context"

	domaintypes "junction/internal/domain/types"
)

// RelayClient is how a CLI or agent talks to a running junction.
type RelayClient interface {
	Register(ctx context.Context) (domaintypes.RegisterResult, error)
	ListPeers(ctx context.Context) ([]domaintypes.PeerInfo, error)
	SendMessage(ctx context.Context, target domaintypes.Alias, body string) error
	ReadMessages(ctx context.Context) ([]domaintypes.Message, error)
	KnownHosts(ctx context.Context) ([]domaintypes.KnownHost, error)
	Disconnect(ctx context.Context) error
	Health(ctx context.Context) (domaintypes.Health, error)
}
