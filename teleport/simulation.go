package teleport

import (
	"errors"
	"fmt"

	"github.com/sarchlab/qtsim/comm"
	"github.com/sarchlab/qtsim/protocol"
	"github.com/sarchlab/qtsim/sim/timing"
)

// ErrAlreadyRun is returned when a Simulation is run a second time.
var ErrAlreadyRun = errors.New("teleport: simulation already run")

// A Simulation owns every component of one run. It is not safe for concurrent
// use, and it can run only once.
type Simulation struct {
	runID  string
	config RunConfig
	ran    bool

	engine   *timing.SerialEngine
	channel  *comm.ClassicalChannel
	sender   *protocol.Sender
	receiver *protocol.Receiver
}

// Engine returns the engine of the run.
func (s *Simulation) Engine() *timing.SerialEngine {
	return s.engine
}

// Channel returns the classical channel.
func (s *Simulation) Channel() *comm.ClassicalChannel {
	return s.channel
}

// Sender returns the sender.
func (s *Simulation) Sender() *protocol.Sender {
	return s.sender
}

// Receiver returns the receiver.
func (s *Simulation) Receiver() *protocol.Receiver {
	return s.receiver
}

// Run schedules the Bell measurement at the start time and drives the
// timeline until it is empty or the stop time is passed.
func (s *Simulation) Run() (RunResult, error) {
	if s.ran {
		return RunResult{}, ErrAlreadyRun
	}
	s.ran = true

	err := s.engine.Schedule(timing.ScheduledEvent{
		Event:   &protocol.MeasureEvent{},
		Time:    timing.VTimeInPS(s.config.StartTime),
		Handler: s.sender,
	})
	if err != nil {
		return RunResult{}, err
	}

	if s.config.StopTime > 0 {
		err = s.engine.RunUntil(timing.VTimeInPS(s.config.StopTime))
	} else {
		err = s.engine.Run()
	}

	if err != nil {
		return RunResult{}, err
	}

	if s.receiver.State() != protocol.ReceiverCorrected {
		return RunResult{}, fmt.Errorf(
			"%w: receiver is %s at %d ps with %d events pending",
			ErrIncompleteRun,
			s.receiver.State(),
			s.engine.CurrentTime(),
			s.engine.Pending(),
		)
	}

	return s.result(), nil
}

func (s *Simulation) result() RunResult {
	return RunResult{
		RunID:              s.runID,
		Config:             s.config,
		Outcome:            s.sender.Outcome(),
		BellType:           s.config.BellType,
		Correction:         s.receiver.Correction(),
		InitialState:       s.config.InitialState,
		ReconstructedState: s.receiver.Reconstructed(),
		Fidelity:           s.receiver.Fidelity(),
		SentAt:             s.sender.SentAt(),
		DeliveredAt:        s.receiver.DeliveredAt(),
		CorrectedAt:        s.receiver.CorrectedAt(),
		EventsProcessed:    int(s.engine.Processed()),
	}
}

// Run builds a fresh simulation for cfg and runs it.
func Run(cfg RunConfig) (RunResult, error) {
	s, err := MakeBuilder().WithConfig(cfg).Build()
	if err != nil {
		return RunResult{}, err
	}

	return s.Run()
}
