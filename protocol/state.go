package protocol

import "fmt"

// SenderState is where a Sender is in its lifecycle.
type SenderState int

// Sender lifecycle: IDLE -> MEASURED -> DONE.
const (
	SenderIdle SenderState = iota
	SenderMeasured
	SenderDone
)

func (s SenderState) String() string {
	switch s {
	case SenderIdle:
		return "IDLE"
	case SenderMeasured:
		return "MEASURED"
	case SenderDone:
		return "DONE"
	}

	return fmt.Sprintf("SenderState(%d)", int(s))
}

// ReceiverState is where a Receiver is in its lifecycle.
type ReceiverState int

// Receiver lifecycle: IDLE -> (PENDING ->) CORRECTED. PENDING is only visited
// when a correction delay is configured.
const (
	ReceiverIdle ReceiverState = iota
	ReceiverPending
	ReceiverCorrected
)

func (s ReceiverState) String() string {
	switch s {
	case ReceiverIdle:
		return "IDLE"
	case ReceiverPending:
		return "PENDING"
	case ReceiverCorrected:
		return "CORRECTED"
	}

	return fmt.Sprintf("ReceiverState(%d)", int(s))
}
