package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/qtsim/config"
	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/teleport"
)

func newRootCmd(e config.Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "qtsim",
		Short: "qtsim simulates quantum teleportation over a delayed classical channel.",
		Long: `qtsim simulates the teleportation of a single qubit state. A Bell ` +
			`measurement at the sender produces two classical bits that travel ` +
			`over a delayed channel, and the receiver applies the Pauli ` +
			`correction that reconstructs the state.`,
		SilenceUsage: true,
	}

	root.AddCommand(newRunCmd(e), newBatchCmd(e), newServeCmd(e))

	return root
}

// runFlags are the flags shared by every command that builds a RunConfig.
type runFlags struct {
	state           string
	bell            string
	delay           int64
	start           int64
	correctionDelay int64
	random          bool
	seed            uint64
}

func (f *runFlags) register(cmd *cobra.Command, e config.Env) {
	cmd.Flags().StringVar(&f.state, "state", e.State,
		"initial state to teleport: ZERO, ONE or PLUS")
	cmd.Flags().StringVar(&f.bell, "bell", e.BellType,
		"shared Bell pair: PHI_PLUS or PSI_MINUS")
	cmd.Flags().Int64Var(&f.delay, "delay", e.ChannelDelay,
		"classical channel delay in ps")
	cmd.Flags().Int64Var(&f.start, "start", e.StartTime,
		"time of the Bell measurement in ps")
	cmd.Flags().Int64Var(&f.correctionDelay, "correction-delay", e.CorrectionDelay,
		"time between delivery and correction in ps")
	cmd.Flags().BoolVar(&f.random, "random", false,
		"sample measurement outcomes instead of the fixed table")
	cmd.Flags().Uint64Var(&f.seed, "seed", e.Seed,
		"seed of the sampled outcomes")
}

func (f *runFlags) config() (teleport.RunConfig, error) {
	state, err := quantum.ParseState(f.state)
	if err != nil {
		return teleport.RunConfig{}, err
	}

	bell, err := quantum.ParseBellType(f.bell)
	if err != nil {
		return teleport.RunConfig{}, err
	}

	cfg := teleport.RunConfig{
		InitialState:    state,
		BellType:        bell,
		ChannelDelay:    f.delay,
		StartTime:       f.start,
		CorrectionDelay: f.correctionDelay,
		RandomOutcomes:  f.random,
		Seed:            f.seed,
	}

	return cfg, cfg.Validate()
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
}

// writeResults writes results as JSON into path, or to w when path is "-".
func writeResults(w io.Writer, path string, results []teleport.RunResult) error {
	if path == "-" {
		return teleport.WriteJSON(w, results)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := teleport.WriteJSON(f, results); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Results written to %s\n", path)

	return nil
}
