package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/qtsim/config"
	"github.com/sarchlab/qtsim/teleport"
	"github.com/sarchlab/qtsim/tracing"
)

func newRunCmd(e config.Env) *cobra.Command {
	var (
		flags     runFlags
		stopTime  int64
		jsonPath  string
		tracePath string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Teleport one state and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			cfg.StopTime = stopTime

			timeline := tracing.NewMemoryTracer(nil)
			b := teleport.MakeBuilder().
				WithConfig(cfg).
				WithTracer(timeline)

			if tracePath != "" {
				tracer, err := fileTracer(tracePath)
				if err != nil {
					return err
				}
				b = b.WithTracer(tracer)
			}

			if verbose {
				b = b.WithEventLogger(newLogger())
			}

			s, err := b.Build()
			if err != nil {
				return err
			}

			res, err := s.Run()
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), res)
			printTimeline(cmd.OutOrStdout(), timeline.Tasks())

			if jsonPath != "" {
				return writeResults(cmd.OutOrStdout(), jsonPath,
					[]teleport.RunResult{res})
			}

			return nil
		},
	}

	flags.register(cmd, e)
	cmd.Flags().Int64Var(&stopTime, "stop", 0,
		"stop the timeline after this time in ps, 0 runs to the end")
	cmd.Flags().StringVar(&jsonPath, "json", "",
		"write the result as JSON into this file, - for stdout")
	cmd.Flags().StringVar(&tracePath, "trace", "",
		"record the tasks of the run into a .json or .csv file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"log every event and message")

	return cmd
}

func fileTracer(path string) (tracing.Tracer, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return tracing.NewCSVTracerFile(path)
	}

	return tracing.NewJSONTracerFile(path)
}

func printResult(w io.Writer, res teleport.RunResult) {
	fmt.Fprintf(w, "Initial state:       %s %s\n",
		res.InitialState, res.InitialState.Ket())
	fmt.Fprintf(w, "Bell pair:           %s %s\n",
		res.BellType, res.BellType.Ket())
	fmt.Fprintf(w, "Measurement outcome: %s\n", res.Outcome)
	fmt.Fprintf(w, "Correction:          %s\n", res.Correction)
	fmt.Fprintf(w, "Sent @ %d, delivered @ %d, corrected @ %d\n",
		res.SentAt, res.DeliveredAt, res.CorrectedAt)
	fmt.Fprintf(w, "Reconstructed state: %s %s (fidelity %.6f)\n",
		res.ReconstructedState, res.ReconstructedState.Ket(), res.Fidelity)
	fmt.Fprintf(w, "Events processed:    %d\n", res.EventsProcessed)
}

func printTimeline(w io.Writer, tasks []tracing.Task) {
	fmt.Fprintln(w, "Timeline:")

	for _, t := range tasks {
		fmt.Fprintf(w, "  %6d - %6d  %-16s %s @ %s\n",
			t.StartTime, t.EndTime, t.Kind, t.What, t.Where)
	}
}
