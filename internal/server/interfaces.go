package server

// Server is the lifecycle of the application's HTTP transport.
type Server interface {
	// RunServer serves requests until a stop signal arrives and in-flight
	// requests have drained.
	RunServer()

	// Shutdown drains in-flight requests and stops accepting new ones.
	Shutdown()
}
