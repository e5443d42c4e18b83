package teleport

import (
	"log"

	"github.com/sarchlab/qtsim/comm"
	"github.com/sarchlab/qtsim/protocol"
	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/sim/hooking"
	"github.com/sarchlab/qtsim/sim/id"
	"github.com/sarchlab/qtsim/sim/timing"
	"github.com/sarchlab/qtsim/tracing"
)

// Builder can be used to build a Simulation.
type Builder struct {
	config  RunConfig
	runID   string
	hooks   []hooking.Hook
	tracers []tracing.Tracer
	logger  *log.Logger
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithConfig sets the run configuration.
func (b Builder) WithConfig(cfg RunConfig) Builder {
	b.config = cfg
	return b
}

// WithRunID names the run. Message and task IDs are prefixed with it.
func (b Builder) WithRunID(runID string) Builder {
	b.runID = runID
	return b
}

// WithHook attaches a hook to the engine.
func (b Builder) WithHook(h hooking.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], h)
	return b
}

// WithTracer collects the tasks of the sender, the channel and the receiver.
func (b Builder) WithTracer(t tracing.Tracer) Builder {
	b.tracers = append(b.tracers[:len(b.tracers):len(b.tracers)], t)
	return b
}

// WithEventLogger logs every event and every message into l.
func (b Builder) WithEventLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// Build validates the configuration and wires a fresh simulation.
func (b Builder) Build() (*Simulation, error) {
	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prefix := ""
	if b.runID != "" {
		prefix = b.runID + "."
	}

	s := &Simulation{
		runID:  b.runID,
		config: cfg,
		engine: timing.NewSerialEngine(),
	}
	idGen := id.NewIDGenerator(prefix)

	s.channel = comm.MakeBuilder().
		WithEngine(s.engine).
		WithDelay(timing.VTimeInPS(cfg.ChannelDelay)).
		Build("Channel")
	s.sender = protocol.MakeSenderBuilder().
		WithEngine(s.engine).
		WithChannel(s.channel).
		WithOutcomeSource(cfg.outcomeSource()).
		WithIDGenerator(idGen).
		WithPeer("Receiver").
		Build("Sender")
	s.receiver = protocol.MakeReceiverBuilder().
		WithEngine(s.engine).
		WithIDGenerator(idGen).
		WithCorrectionDelay(timing.VTimeInPS(cfg.CorrectionDelay)).
		Build("Receiver")
	s.channel.PlugIn(s.receiver)

	if err := s.loadPair(); err != nil {
		return nil, err
	}

	b.attachObservers(s)

	return s, nil
}

func (b Builder) attachObservers(s *Simulation) {
	for _, h := range b.hooks {
		s.engine.AcceptHook(h)
	}

	for _, t := range b.tracers {
		tracing.CollectTrace(s.sender, t)
		tracing.CollectTrace(s.channel, t)
		tracing.CollectTrace(s.receiver, t)
	}

	if b.logger != nil {
		s.engine.AcceptHook(timing.NewEventLogger(b.logger))
		s.channel.AcceptHook(comm.NewMsgLogger(b.logger))
	}
}

func (s *Simulation) loadPair() error {
	pair, err := quantum.NewEntangledPair(s.config.BellType)
	if err != nil {
		return err
	}

	if err := s.sender.Load(s.config.InitialState, pair.SenderHalf()); err != nil {
		return err
	}

	return s.receiver.Load(pair.ReceiverHalf())
}
