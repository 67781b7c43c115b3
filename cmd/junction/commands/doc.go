// Package commands defines the junction CLI and wires dependencies for subcommands.
//
// Commands
//
//   - serve        Run a junction (engine, sweep and HTTP transport)
//   - register     Join a junction and print the alias and session id
//   - peers        List the other connected peers
//   - send         Queue a message for a peer by alias
//   - read         Drain and print pending messages
//   - hosts        Print the advisory known-hosts list
//   - disconnect   Leave the junction and purge the session
//   - health       Print the junction's health document
//
// # Implementation
//
// Client commands build one relay.HTTPClient from --server and --session
// before running. The session id printed by register can be passed back with
// --session or $JUNCTION_SESSION so later invocations act as the same peer.
package commands
