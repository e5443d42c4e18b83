// Package timing provides the discrete-event timeline that drives one
// teleportation run.
package timing

import "github.com/sarchlab/qtsim/sim/hooking"

// VTimeInPS is a point on the simulated timeline, in picoseconds.
type VTimeInPS uint64

// Handler processes events of various types. Events are plain data; handlers
// type-switch on them:
//
//	func (c *Comp) Handle(event any) error {
//	    switch e := event.(type) {
//	    case *MeasureEvent:
//	        return c.measure(e)
//	    default:
//	        return fmt.Errorf("unknown event type: %T", event)
//	    }
//	}
type Handler interface {
	Handle(event any) error
}

// HandlerFunc lets a plain closure act as the action of an event.
type HandlerFunc func(event any) error

// Handle calls f(event).
func (f HandlerFunc) Handle(event any) error {
	return f(event)
}

// TimeTeller exposes the current simulation time.
type TimeTeller interface {
	CurrentTime() VTimeInPS
}

// EventScheduler schedules events on the timeline.
type EventScheduler interface {
	TimeTeller
	Schedule(event ScheduledEvent) error
}

// ScheduledEvent is the engine-facing wrapper around a user event.
type ScheduledEvent struct {
	// Event is the payload delivered to the handler. Usually a pointer to a
	// struct owned by the component that scheduled it.
	Event any

	// Time is when the event should be processed.
	Time VTimeInPS

	// Handler processes the event.
	Handler Handler

	// seq breaks ties between events at the same time. Assigned by the engine.
	seq uint64
}

// Seq returns the insertion sequence the engine assigned to the event. It is
// zero until the event is scheduled.
func (e ScheduledEvent) Seq() uint64 {
	return e.seq
}

// HookPosBeforeEvent is a hook position that triggers before handling an event.
var HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent is a hook position that triggers after handling an event.
var HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}
