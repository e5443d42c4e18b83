package protocol

import (
	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/sim/hooking"
	"github.com/sarchlab/qtsim/sim/id"
	"github.com/sarchlab/qtsim/sim/timing"
)

// SenderBuilder can build Senders.
type SenderBuilder struct {
	engine   timing.EventScheduler
	channel  Channel
	outcomes quantum.OutcomeSource
	idGen    id.IDGenerator
	peer     string
}

// MakeSenderBuilder creates a SenderBuilder that uses deterministic outcomes
// and addresses a peer called "Receiver".
func MakeSenderBuilder() SenderBuilder {
	return SenderBuilder{
		outcomes: quantum.DeterministicOutcomes{},
		peer:     "Receiver",
	}
}

// WithEngine sets the scheduler the sender reads time from.
func (b SenderBuilder) WithEngine(e timing.EventScheduler) SenderBuilder {
	b.engine = e
	return b
}

// WithChannel sets the channel the outcome is sent over.
func (b SenderBuilder) WithChannel(c Channel) SenderBuilder {
	b.channel = c
	return b
}

// WithOutcomeSource sets how measurement outcomes are decided.
func (b SenderBuilder) WithOutcomeSource(s quantum.OutcomeSource) SenderBuilder {
	b.outcomes = s
	return b
}

// WithIDGenerator sets the generator of message and task IDs.
func (b SenderBuilder) WithIDGenerator(g id.IDGenerator) SenderBuilder {
	b.idGen = g
	return b
}

// WithPeer sets the destination name written into the message.
func (b SenderBuilder) WithPeer(name string) SenderBuilder {
	b.peer = name
	return b
}

// Build creates a Sender.
func (b SenderBuilder) Build(name string) *Sender {
	if b.engine == nil {
		panic("protocol: sender " + name + " built without an engine")
	}

	if b.channel == nil {
		panic("protocol: sender " + name + " built without a channel")
	}

	idGen := b.idGen
	if idGen == nil {
		idGen = id.NewIDGenerator(name + ".")
	}

	return &Sender{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		peer:         b.peer,
		engine:       b.engine,
		channel:      b.channel,
		outcomes:     b.outcomes,
		idGen:        idGen,
	}
}

// ReceiverBuilder can build Receivers.
type ReceiverBuilder struct {
	engine          timing.EventScheduler
	idGen           id.IDGenerator
	correctionDelay timing.VTimeInPS
}

// MakeReceiverBuilder creates a ReceiverBuilder that corrects on delivery.
func MakeReceiverBuilder() ReceiverBuilder {
	return ReceiverBuilder{}
}

// WithEngine sets the scheduler the receiver reads time from and schedules
// delayed corrections on.
func (b ReceiverBuilder) WithEngine(e timing.EventScheduler) ReceiverBuilder {
	b.engine = e
	return b
}

// WithIDGenerator sets the generator of task IDs.
func (b ReceiverBuilder) WithIDGenerator(g id.IDGenerator) ReceiverBuilder {
	b.idGen = g
	return b
}

// WithCorrectionDelay sets the time between delivery and correction.
func (b ReceiverBuilder) WithCorrectionDelay(d timing.VTimeInPS) ReceiverBuilder {
	b.correctionDelay = d
	return b
}

// Build creates a Receiver.
func (b ReceiverBuilder) Build(name string) *Receiver {
	if b.engine == nil {
		panic("protocol: receiver " + name + " built without an engine")
	}

	idGen := b.idGen
	if idGen == nil {
		idGen = id.NewIDGenerator(name + ".")
	}

	return &Receiver{
		HookableBase:    hooking.NewHookableBase(),
		name:            name,
		engine:          b.engine,
		idGen:           idGen,
		correctionDelay: b.correctionDelay,
	}
}
