package timing

import "github.com/sarchlab/qtsim/sim/hooking"

// An Engine keeps the discrete event simulation running.
type Engine interface {
	hooking.Hookable
	EventScheduler

	// Run processes events until the queue is empty.
	Run() error

	// RunUntil processes every event scheduled at or before stop and leaves
	// the later ones in the queue.
	RunUntil(stop VTimeInPS) error

	// Pending returns the number of events still queued.
	Pending() int
}
