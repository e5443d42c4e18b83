package protocol

import (
	"fmt"

	"github.com/sarchlab/qtsim/comm"
	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/sim/hooking"
	"github.com/sarchlab/qtsim/sim/id"
	"github.com/sarchlab/qtsim/sim/timing"
	"github.com/sarchlab/qtsim/tracing"
)

// Sender holds the state to teleport and one half of the entangled pair.
type Sender struct {
	*hooking.HookableBase

	name     string
	peer     string
	engine   timing.EventScheduler
	channel  Channel
	outcomes quantum.OutcomeSource
	idGen    id.IDGenerator

	state   SenderState
	input   quantum.State
	half    *quantum.PairHalf
	outcome quantum.Outcome
	sentAt  timing.VTimeInPS
	msg     *comm.TeleportationMessage
}

// Name returns the name of the sender.
func (s *Sender) Name() string {
	return s.name
}

// State returns the lifecycle state.
func (s *Sender) State() SenderState {
	return s.state
}

// Outcome returns the measured outcome. It is meaningful once the sender left
// IDLE.
func (s *Sender) Outcome() quantum.Outcome {
	return s.outcome
}

// SentAt returns when the outcome message was sent.
func (s *Sender) SentAt() timing.VTimeInPS {
	return s.sentAt
}

// Message returns the message sent, or nil before the measurement.
func (s *Sender) Message() *comm.TeleportationMessage {
	return s.msg
}

// Load gives the sender the state to teleport and its half of the pair.
func (s *Sender) Load(input quantum.State, half *quantum.PairHalf) error {
	if s.state != SenderIdle || s.half != nil {
		return fmt.Errorf("%w: %s is %s", ErrProtocolReuse, s.name, s.state)
	}

	if !input.Valid() {
		return fmt.Errorf("%w: %d", quantum.ErrUnknownState, int(input))
	}

	if half == nil {
		return fmt.Errorf("%w: %s got a nil half", ErrNotLoaded, s.name)
	}

	s.input = input
	s.half = half

	return nil
}

// Handle processes the events scheduled for the sender.
func (s *Sender) Handle(event any) error {
	switch event.(type) {
	case *MeasureEvent:
		return s.PerformBellMeasurement()
	default:
		return fmt.Errorf("protocol: %s cannot handle %T", s.name, event)
	}
}

// PerformBellMeasurement measures the input state together with the sender's
// half, collapses the pair and sends the outcome to the receiver at the
// current time.
func (s *Sender) PerformBellMeasurement() error {
	if s.state != SenderIdle {
		return fmt.Errorf("%w: %s is %s", ErrProtocolReuse, s.name, s.state)
	}

	if s.half == nil {
		return fmt.Errorf("%w: %s", ErrNotLoaded, s.name)
	}

	now := s.engine.CurrentTime()
	taskID := s.idGen.Generate()
	tracing.StartTask(taskID, "", s, tracing.KindBellMeasurement,
		"measure "+s.input.String(), now, nil)

	o := s.outcomes.Outcome(s.input)
	if err := s.half.MeasureWith(s.input, o); err != nil {
		return err
	}

	s.outcome = o
	s.state = SenderMeasured
	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosMeasured,
		Item:   o,
	})
	tracing.EndTask(taskID, s, now)

	msg := &comm.TeleportationMessage{
		ID:      s.idGen.Generate(),
		Src:     s.name,
		Dst:     s.peer,
		Outcome: o,
		SentAt:  now,
	}
	if err := s.channel.Send(msg, now); err != nil {
		return err
	}

	s.msg = msg
	s.sentAt = now
	s.state = SenderDone

	return nil
}
