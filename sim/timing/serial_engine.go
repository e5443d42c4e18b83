package timing

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/sarchlab/qtsim/sim/hooking"
)

// SerialEngine processes scheduled events one after another in (time,
// sequence) order. An instance belongs to exactly one run and must not be
// shared between goroutines that schedule events.
type SerialEngine struct {
	*hooking.HookableBase

	timeLock sync.RWMutex
	now      VTimeInPS

	queue     eventQueue
	nextSeq   uint64
	processed uint64

	singleRunLock sync.Mutex
}

// NewSerialEngine creates a SerialEngine whose clock starts at 0.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{
		HookableBase: hooking.NewHookableBase(),
		queue:        newScheduledEventQueue(),
	}
}

// Schedule registers an event to be handled in the future. Events at the same
// time run in the order they were scheduled.
func (e *SerialEngine) Schedule(evt ScheduledEvent) error {
	now := e.readNow()

	if evt.Handler == nil {
		return &ScheduleError{
			Event: evt.Event, Time: evt.Time, Now: now,
			Reason: "event has no handler",
		}
	}

	if evt.Time < now {
		return &ScheduleError{
			Event: evt.Event, Time: evt.Time, Now: now,
			Reason: "event is in the past",
		}
	}

	e.nextSeq++
	eventCopy := evt
	eventCopy.seq = e.nextSeq
	e.queue.Push(&eventCopy)

	return nil
}

func (e *SerialEngine) readNow() VTimeInPS {
	e.timeLock.RLock()
	t := e.now
	e.timeLock.RUnlock()

	return t
}

func (e *SerialEngine) writeNow(t VTimeInPS) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

// Run processes all scheduled events until the queue is empty. The first
// error returned by a handler stops the run; the events left in the queue are
// not executed.
func (e *SerialEngine) Run() error {
	return e.run(0, false)
}

// RunUntil processes the events scheduled at or before stop.
func (e *SerialEngine) RunUntil(stop VTimeInPS) error {
	return e.run(stop, true)
}

func (e *SerialEngine) run(stop VTimeInPS, bounded bool) error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for {
		next := e.queue.Peek()
		if next == nil {
			return nil
		}

		if bounded && next.Time > stop {
			return nil
		}

		evt := e.queue.Pop()
		now := e.readNow()
		if evt.Time < now {
			panic(fmt.Sprintf(
				"timing: cannot run event in the past, evt %s @ %d, now %d",
				reflect.TypeOf(evt.Event), evt.Time, now,
			))
		}

		e.writeNow(evt.Time)

		hookCtx := hooking.HookCtx{
			Domain: e,
			Pos:    HookPosBeforeEvent,
			Item:   *evt,
		}
		e.InvokeHook(hookCtx)

		err := evt.Handler.Handle(evt.Event)
		e.processed++

		hookCtx.Pos = HookPosAfterEvent
		hookCtx.Detail = err
		e.InvokeHook(hookCtx)

		if err != nil {
			return fmt.Errorf("timing: handling %s @ %d: %w",
				reflect.TypeOf(evt.Event), evt.Time, err)
		}
	}
}

// CurrentTime returns the time of the most recently executed event.
func (e *SerialEngine) CurrentTime() VTimeInPS {
	return e.readNow()
}

// Pending returns the number of events still in the queue.
func (e *SerialEngine) Pending() int {
	return e.queue.Len()
}

// Processed returns the number of events handled so far.
func (e *SerialEngine) Processed() uint64 {
	return e.processed
}

var _ Engine = (*SerialEngine)(nil)
