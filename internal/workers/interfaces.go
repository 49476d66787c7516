// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that runs and stops
// several workers together, and the expired link sweeper.
package workers

// Worker is the interface that must be implemented by any background worker.
//
// Run must not block: implementations start their own goroutines and
// return. Stop signals those goroutines to finish and waits for them.
type Worker interface {
	Run()
	Stop()
}
