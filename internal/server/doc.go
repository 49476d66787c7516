// Package server wires and runs the application's HTTP server.
//
// It owns the server lifecycle: startup, signal handling and graceful
// shutdown bounded by a drain timeout.
package server
