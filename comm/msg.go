// Package comm carries classical messages between the teleportation
// endpoints.
package comm

import (
	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/sim/timing"
)

// TeleportationMessage carries the Bell measurement outcome from the sender to
// the receiver. It is immutable once sent.
type TeleportationMessage struct {
	ID      string           `json:"id"`
	Src     string           `json:"src"`
	Dst     string           `json:"dst"`
	Outcome quantum.Outcome  `json:"outcome"`
	SentAt  timing.VTimeInPS `json:"sent_at"`
}

// An Endpoint is something a ClassicalChannel can deliver to.
type Endpoint interface {
	Name() string
	OnMessageDelivered(msg *TeleportationMessage) error
}

// DeliverEvent moves a message from the channel to its endpoint.
type DeliverEvent struct {
	Msg   *TeleportationMessage
	DueAt timing.VTimeInPS
}
