package teleport

import (
	"errors"
	"fmt"

	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/sim/timing"
)

// ErrInvalidResult is returned by RunResult.Validate.
var ErrInvalidResult = errors.New("teleport: invalid result")

// RunResult is the record of one completed run. It is never modified after
// Run returns it.
type RunResult struct {
	RunID              string             `json:"run_id,omitempty"`
	Config             RunConfig          `json:"config"`
	Outcome            quantum.Outcome    `json:"outcome"`
	BellType           quantum.BellType   `json:"bell_type"`
	Correction         quantum.Correction `json:"correction"`
	InitialState       quantum.State      `json:"initial_state"`
	ReconstructedState quantum.State      `json:"reconstructed_state"`
	Fidelity           float64            `json:"fidelity"`
	SentAt             timing.VTimeInPS   `json:"sent_at"`
	DeliveredAt        timing.VTimeInPS   `json:"delivered_at"`
	CorrectedAt        timing.VTimeInPS   `json:"corrected_at"`
	EventsProcessed    int                `json:"events_processed"`
}

// Success reports whether the reconstructed state is the initial state.
func (r RunResult) Success() bool {
	return r.ReconstructedState == r.InitialState
}

// Validate checks that the record is consistent with its configuration and
// with the correction table.
func (r RunResult) Validate() error {
	if !r.Outcome.Valid() {
		return fmt.Errorf("%w: outcome %s", ErrInvalidResult, r.Outcome)
	}

	if r.BellType != r.Config.BellType || r.InitialState != r.Config.InitialState {
		return fmt.Errorf("%w: result does not match its config", ErrInvalidResult)
	}

	if r.SentAt != timing.VTimeInPS(r.Config.StartTime) {
		return fmt.Errorf("%w: sent at %d, start time %d",
			ErrInvalidResult, r.SentAt, r.Config.StartTime)
	}

	if r.DeliveredAt != r.SentAt+timing.VTimeInPS(r.Config.ChannelDelay) {
		return fmt.Errorf("%w: delivered at %d, sent at %d with delay %d",
			ErrInvalidResult, r.DeliveredAt, r.SentAt, r.Config.ChannelDelay)
	}

	if r.CorrectedAt != r.DeliveredAt+timing.VTimeInPS(r.Config.CorrectionDelay) {
		return fmt.Errorf("%w: corrected at %d, delivered at %d",
			ErrInvalidResult, r.CorrectedAt, r.DeliveredAt)
	}

	c, err := quantum.CorrectionFor(r.BellType, r.Outcome)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}

	if c != r.Correction {
		return fmt.Errorf("%w: correction %s, table says %s",
			ErrInvalidResult, r.Correction, c)
	}

	return nil
}
