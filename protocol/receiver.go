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

// Receiver holds the other half of the entangled pair and reconstructs the
// teleported state once the measurement outcome arrives.
type Receiver struct {
	*hooking.HookableBase

	name            string
	engine          timing.EventScheduler
	idGen           id.IDGenerator
	correctionDelay timing.VTimeInPS

	state         ReceiverState
	half          *quantum.PairHalf
	msg           *comm.TeleportationMessage
	taskID        string
	correction    quantum.Correction
	reconstructed quantum.State
	fidelity      float64
	deliveredAt   timing.VTimeInPS
	correctedAt   timing.VTimeInPS
}

// Name returns the name of the receiver.
func (r *Receiver) Name() string {
	return r.name
}

// State returns the lifecycle state.
func (r *Receiver) State() ReceiverState {
	return r.state
}

// Correction returns the correction applied.
func (r *Receiver) Correction() quantum.Correction {
	return r.correction
}

// Reconstructed returns the state identified after the correction.
func (r *Receiver) Reconstructed() quantum.State {
	return r.reconstructed
}

// Fidelity returns the fidelity between the corrected qubit and the
// reconstructed state.
func (r *Receiver) Fidelity() float64 {
	return r.fidelity
}

// DeliveredAt returns when the outcome message arrived.
func (r *Receiver) DeliveredAt() timing.VTimeInPS {
	return r.deliveredAt
}

// CorrectedAt returns when the correction was applied.
func (r *Receiver) CorrectedAt() timing.VTimeInPS {
	return r.correctedAt
}

// Message returns the delivered message, or nil before delivery.
func (r *Receiver) Message() *comm.TeleportationMessage {
	return r.msg
}

// Load gives the receiver its half of the pair.
func (r *Receiver) Load(half *quantum.PairHalf) error {
	if r.state != ReceiverIdle || r.half != nil {
		return fmt.Errorf("%w: %s is %s", ErrProtocolReuse, r.name, r.state)
	}

	if half == nil {
		return fmt.Errorf("%w: %s got a nil half", ErrNotLoaded, r.name)
	}

	r.half = half

	return nil
}

// OnMessageDelivered records the outcome message. The correction is applied
// right away, or after the correction delay if one is configured.
func (r *Receiver) OnMessageDelivered(msg *comm.TeleportationMessage) error {
	if r.state != ReceiverIdle || r.msg != nil {
		return fmt.Errorf("%w: %s is %s", ErrProtocolReuse, r.name, r.state)
	}

	if r.half == nil {
		return fmt.Errorf("%w: %s", ErrNotLoaded, r.name)
	}

	now := r.engine.CurrentTime()
	r.msg = msg
	r.deliveredAt = now
	r.taskID = r.idGen.Generate()
	tracing.StartTask(r.taskID, msg.ID, r, tracing.KindCorrection,
		"correct "+msg.Outcome.String(), now, msg)

	if r.correctionDelay == 0 {
		return r.applyCorrection(now)
	}

	err := r.engine.Schedule(timing.ScheduledEvent{
		Event:   &CorrectEvent{Msg: msg},
		Time:    now + r.correctionDelay,
		Handler: r,
	})
	if err != nil {
		return err
	}

	r.state = ReceiverPending

	return nil
}

// Handle processes the events scheduled for the receiver.
func (r *Receiver) Handle(event any) error {
	switch event.(type) {
	case *CorrectEvent:
		if r.state != ReceiverPending {
			return fmt.Errorf("%w: %s is %s", ErrProtocolReuse, r.name, r.state)
		}

		return r.applyCorrection(r.engine.CurrentTime())
	default:
		return fmt.Errorf("protocol: %s cannot handle %T", r.name, event)
	}
}

func (r *Receiver) applyCorrection(now timing.VTimeInPS) error {
	c, err := quantum.CorrectionFor(r.half.BellType(), r.msg.Outcome)
	if err != nil {
		return err
	}

	q, err := r.half.Correct(c)
	if err != nil {
		return err
	}

	r.correction = c
	r.reconstructed, r.fidelity = quantum.Identify(q)
	r.correctedAt = now
	r.state = ReceiverCorrected

	tracing.EndTask(r.taskID, r, now)
	r.InvokeHook(hooking.HookCtx{
		Domain: r,
		Pos:    HookPosCorrected,
		Item:   c,
		Detail: r.reconstructed,
	})

	return nil
}

var _ comm.Endpoint = (*Receiver)(nil)
