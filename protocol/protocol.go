// Package protocol implements the two ends of quantum teleportation. The
// Sender performs the Bell measurement and sends the outcome over a classical
// channel. The Receiver applies the matching Pauli correction to its half of
// the entangled pair when the outcome arrives.
package protocol

import (
	"errors"

	"github.com/sarchlab/qtsim/comm"
	"github.com/sarchlab/qtsim/sim/hooking"
	"github.com/sarchlab/qtsim/sim/timing"
)

// ErrProtocolReuse is returned when a protocol instance is asked to act a
// second time. Every instance serves exactly one teleportation.
var ErrProtocolReuse = errors.New("protocol: instance already used")

// ErrNotLoaded is returned when a protocol acts before it was given its half
// of the entangled pair.
var ErrNotLoaded = errors.New("protocol: no pair half loaded")

// Channel carries a message to the peer.
type Channel interface {
	Send(msg *comm.TeleportationMessage, at timing.VTimeInPS) error
}

// Hook positions raised by the protocols.
var (
	// HookPosMeasured fires after the Bell measurement. Item is the outcome.
	HookPosMeasured = &hooking.HookPos{Name: "Measured"}

	// HookPosCorrected fires after the correction. Item is the correction.
	HookPosCorrected = &hooking.HookPos{Name: "Corrected"}
)

// MeasureEvent triggers the Bell measurement on a Sender.
type MeasureEvent struct{}

// CorrectEvent triggers a delayed correction on a Receiver.
type CorrectEvent struct {
	Msg *comm.TeleportationMessage
}
