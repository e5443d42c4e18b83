// Package teleport wires a timeline, a classical channel, a sender and a
// receiver into one teleportation run and packages its result.
package teleport

import (
	"errors"
	"fmt"

	"github.com/sarchlab/qtsim/quantum"
)

// ErrInvalidConfig is returned when a run configuration is rejected. Nothing
// is scheduled for a rejected configuration.
var ErrInvalidConfig = errors.New("teleport: invalid config")

// ErrIncompleteRun is returned when the timeline stops before the receiver
// applied its correction.
var ErrIncompleteRun = errors.New("teleport: incomplete run")

// RunConfig describes one teleportation run. Times are in picoseconds.
type RunConfig struct {
	InitialState quantum.State    `json:"initial_state"`
	BellType     quantum.BellType `json:"bell_type"`
	ChannelDelay int64            `json:"channel_delay"`
	StartTime    int64            `json:"start_time"`

	// CorrectionDelay is the time the receiver takes to apply the correction
	// after delivery.
	CorrectionDelay int64 `json:"correction_delay,omitempty"`

	// StopTime bounds the timeline when non-zero. A run stopped before the
	// correction fails with ErrIncompleteRun.
	StopTime int64 `json:"stop_time,omitempty"`

	// RandomOutcomes samples the measurement outcome from a source seeded
	// with Seed instead of deriving it from the input state.
	RandomOutcomes bool   `json:"random_outcomes,omitempty"`
	Seed           uint64 `json:"seed,omitempty"`
}

// Validate checks the tags and the times of the configuration.
func (c RunConfig) Validate() error {
	if !c.InitialState.Valid() {
		return fmt.Errorf("%w: %w: %d",
			ErrInvalidConfig, quantum.ErrUnknownState, int(c.InitialState))
	}

	if !c.BellType.Valid() {
		return fmt.Errorf("%w: %w: %d",
			ErrInvalidConfig, quantum.ErrUnknownBellType, int(c.BellType))
	}

	times := []struct {
		name  string
		value int64
	}{
		{"channel delay", c.ChannelDelay},
		{"start time", c.StartTime},
		{"correction delay", c.CorrectionDelay},
		{"stop time", c.StopTime},
	}
	for _, t := range times {
		if t.value < 0 {
			return fmt.Errorf("%w: %s %d is negative",
				ErrInvalidConfig, t.name, t.value)
		}
	}

	if c.StopTime != 0 && c.StopTime < c.StartTime {
		return fmt.Errorf("%w: stop time %d is before start time %d",
			ErrInvalidConfig, c.StopTime, c.StartTime)
	}

	return nil
}

func (c RunConfig) outcomeSource() quantum.OutcomeSource {
	if c.RandomOutcomes {
		return quantum.NewSeededOutcomes(c.Seed)
	}

	return quantum.DeterministicOutcomes{}
}
