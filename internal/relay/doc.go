// Package relay provides an HTTP implementation of the domain.RelayClient
// interface used by the junction CLI and by agents embedding it.
//
// Supported operations include:
//   - Registering and remembering the session id the junction minted.
//   - Listing other connected peers.
//   - Sending a message to a peer by alias.
//   - Draining our inbox.
//   - Fetching the advisory known-hosts list and the health document.
//   - Disconnecting.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx replies are returned as *APIError, which unwraps to the
// matching domain sentinel so callers can use errors.Is.
package relay
