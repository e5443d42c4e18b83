package comm

import (
	"github.com/sarchlab/qtsim/sim/hooking"
	"github.com/sarchlab/qtsim/sim/timing"
)

// Builder can help building a ClassicalChannel.
type Builder struct {
	engine timing.EventScheduler
	delay  timing.VTimeInPS
}

// MakeBuilder creates a builder with zero delay.
func MakeBuilder() Builder {
	return Builder{}
}

// WithEngine sets the scheduler deliveries are placed on.
func (b Builder) WithEngine(e timing.EventScheduler) Builder {
	b.engine = e
	return b
}

// WithDelay sets the propagation delay.
func (b Builder) WithDelay(d timing.VTimeInPS) Builder {
	b.delay = d
	return b
}

// Build creates the channel.
func (b Builder) Build(name string) *ClassicalChannel {
	if b.engine == nil {
		panic("comm: channel " + name + " built without an engine")
	}

	return &ClassicalChannel{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		engine:       b.engine,
		delay:        b.delay,
	}
}
