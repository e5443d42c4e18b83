package batch

import (
	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/teleport"
)

// Sweep returns one configuration per (state, bell type, delay) combination,
// states varying slowest.
func Sweep(
	states []quantum.State,
	bells []quantum.BellType,
	delays []int64,
) []teleport.RunConfig {
	configs := make([]teleport.RunConfig, 0, len(states)*len(bells)*len(delays))

	for _, s := range states {
		for _, b := range bells {
			for _, d := range delays {
				configs = append(configs, teleport.RunConfig{
					InitialState: s,
					BellType:     b,
					ChannelDelay: d,
				})
			}
		}
	}

	return configs
}

// Repeat returns n copies of cfg. When cfg samples random outcomes, copy i is
// seeded with cfg.Seed+i so that the copies differ but stay reproducible.
func Repeat(cfg teleport.RunConfig, n int) []teleport.RunConfig {
	configs := make([]teleport.RunConfig, n)

	for i := range configs {
		configs[i] = cfg
		if cfg.RandomOutcomes {
			configs[i].Seed = cfg.Seed + uint64(i)
		}
	}

	return configs
}
