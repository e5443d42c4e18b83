package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sarchlab/qtsim/batch"
	"github.com/sarchlab/qtsim/config"
	"github.com/sarchlab/qtsim/datarecording"
	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/sim/id"
	"github.com/sarchlab/qtsim/teleport"
	"github.com/sarchlab/qtsim/tracing"
)

// batchFlags configure how a batch is generated and where it is recorded.
type batchFlags struct {
	runFlags

	runs      int
	workers   int
	sweep     bool
	delays    []int64
	dbPath    string
	traceDB   bool
	jsonPath  string
	summaryTo string
}

func (f *batchFlags) register(cmd *cobra.Command, e config.Env) {
	f.runFlags.register(cmd, e)

	cmd.Flags().IntVarP(&f.runs, "runs", "n", e.Runs,
		"number of runs, or repetitions of each sweep point")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", e.Workers,
		"number of concurrent runs, 0 uses one per CPU")
	cmd.Flags().BoolVar(&f.sweep, "sweep", false,
		"run every state and Bell pair for each delay")
	cmd.Flags().Int64SliceVar(&f.delays, "delays", nil,
		"channel delays of the sweep in ps, defaults to --delay")
	cmd.Flags().StringVar(&f.dbPath, "db", e.DBPath,
		"record the results into this SQLite database, without extension")
	cmd.Flags().BoolVar(&f.traceDB, "trace-db", false,
		"also record the tasks of every run into the database")
	cmd.Flags().StringVar(&f.jsonPath, "json", "",
		"write the results as JSON into this file, - for stdout")
	cmd.Flags().StringVar(&f.summaryTo, "summary", "text",
		"summary format: text or json")
}

func (f *batchFlags) configs() ([]teleport.RunConfig, error) {
	base, err := f.config()
	if err != nil {
		return nil, err
	}

	if f.runs < 1 {
		return nil, fmt.Errorf("%w: runs %d", teleport.ErrInvalidConfig, f.runs)
	}

	if !f.sweep {
		return batch.Repeat(base, f.runs), nil
	}

	delays := f.delays
	if len(delays) == 0 {
		delays = []int64{base.ChannelDelay}
	}

	var configs []teleport.RunConfig
	for _, point := range batch.Sweep(quantum.States, quantum.BellTypes, delays) {
		point.StartTime = base.StartTime
		point.CorrectionDelay = base.CorrectionDelay
		point.RandomOutcomes = base.RandomOutcomes
		point.Seed = base.Seed + uint64(len(configs))
		configs = append(configs, batch.Repeat(point, f.runs)...)
	}

	return configs, nil
}

func (f *batchFlags) runnerOptions() ([]batch.Option, func() error) {
	opts := []batch.Option{
		batch.WithRunIDPrefix(id.NewXIDGenerator().Generate() + "-"),
	}
	if f.workers > 0 {
		opts = append(opts, batch.WithWorkers(f.workers))
	}

	if f.dbPath == "" {
		return opts, func() error { return nil }
	}

	recorder := datarecording.New(f.dbPath)
	opts = append(opts, batch.WithRecorder(recorder))

	if f.traceDB {
		opts = append(opts, batch.WithTracer(tracing.NewDBTracer(recorder)))
	}

	return opts, recorder.Close
}

func newBatchCmd(e config.Env) *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run many independent teleportations and summarize them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configs, err := flags.configs()
			if err != nil {
				return err
			}

			opts, closeRecorder := flags.runnerOptions()
			runner := batch.NewRunner(opts...)
			items := runner.Run(cmd.Context(), configs)

			if err := closeRecorder(); err != nil {
				return err
			}

			if err := printSummary(cmd.OutOrStdout(), flags.summaryTo,
				batch.Summarize(items)); err != nil {
				return err
			}

			if flags.jsonPath != "" {
				if err := writeResults(cmd.OutOrStdout(), flags.jsonPath,
					batch.Results(items)); err != nil {
					return err
				}
			}

			return firstError(items)
		},
	}

	flags.register(cmd, e)

	return cmd
}

func firstError(items []batch.Item) error {
	for _, item := range items {
		if item.Err != nil {
			return fmt.Errorf("run %d: %w", item.Index, item.Err)
		}
	}

	return nil
}

func printSummary(w io.Writer, format string, s batch.Summary) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "text":
	default:
		return fmt.Errorf("unknown summary format %q", format)
	}

	fmt.Fprintf(w, "Runs: %d, succeeded: %d, failed: %d\n",
		s.Total, s.Succeeded, s.Failed)

	fmt.Fprintln(w, "Outcomes:")
	for _, o := range s.Outcomes {
		fmt.Fprintf(w, "  %s  %6d  %6.2f%%  deviation %5.2f\n",
			o.Outcome, o.Count, o.Percent, o.Deviation)
	}
	fmt.Fprintf(w, "Chi-square: %.3f, uniform: %v\n",
		s.ChiSquare, s.ConsistentWithUniform)

	fmt.Fprintln(w, "Corrections:")
	for _, c := range quantum.Corrections {
		fmt.Fprintf(w, "  %-4s  %6d  %6.2f%%\n",
			c, s.Corrections[c.String()], s.CorrectionPercent[c.String()])
	}

	fmt.Fprintf(w, "Delay: mean %.1f, std %.1f, min %d, max %d\n",
		s.Delay.Mean, s.Delay.Std, s.Delay.Min, s.Delay.Max)
	fmt.Fprintf(w, "Mean fidelity: %.6f, success rate: %.2f%%\n",
		s.MeanFidelity, 100*s.SuccessRate)

	return nil
}

