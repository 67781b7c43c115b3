// Package server exposes a Junction over JSON/HTTP.
//
// The transport is stateless with respect to peers: every request carries its
// session in the Junction-Session-Id header, is mapped to exactly one engine
// operation, and the result or error is serialized back.
//
// Routes
//
//	POST   /v1/register       join; mints a session id when the header is absent
//	GET    /v1/peers          other connected peers
//	POST   /v1/messages       {"target_alias": "...", "message": "..."}
//	POST   /v1/messages/read  drain the caller's inbox
//	GET    /v1/known-hosts    advisory host list
//	DELETE /v1/session        leave and purge
//	GET    /health            status, mode, active peers, uptime
//	GET    /metrics           Prometheus exposition
//
// Errors are returned as {"error": {"code": "...", "message": "..."}}.
package server
