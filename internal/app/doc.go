// Package app wires application dependencies for the junction server.
//
// It loads Config from defaults, an optional TOML file and the environment,
// then builds the engine, metrics registry and HTTP server exposed through
// the Wire struct for commands to use.
package app
