package types

// KnownHost is a statically configured junction on the local network.
// It is advisory only; the junction never contacts it.
//
// BaseURL and HealthURL are filled in by the transport when it serves the list.
type KnownHost struct {
	Name      string `json:"name" toml:"name"`
	Address   string `json:"address" toml:"address"`
	Port      int    `json:"port" toml:"port"`
	BaseURL   string `json:"baseUrl,omitempty" toml:"-"`
	HealthURL string `json:"healthUrl,omitempty" toml:"-"`
}
