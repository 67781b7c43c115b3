package domain

import (
	interfaces "junction/internal/domain/interfaces"
	types "junction/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID      = types.SessionID
	Alias          = types.Alias
	PeerInfo       = types.PeerInfo
	Message        = types.Message
	KnownHost      = types.KnownHost
	RegisterResult = types.RegisterResult
	Health         = types.Health
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Junction    = interfaces.Junction
	RelayClient = interfaces.RelayClient
)
