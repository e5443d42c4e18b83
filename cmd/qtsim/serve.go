package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/qtsim/batch"
	"github.com/sarchlab/qtsim/config"
	"github.com/sarchlab/qtsim/monitoring"
)

func newServeCmd(e config.Env) *cobra.Command {
	var (
		flags batchFlags
		port  int
		open  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a batch behind the web monitor",
		Long: `serve starts the web monitor, runs the batch while reporting its ` +
			`progress, and keeps serving the results until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configs, err := flags.configs()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(),
				os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts, closeRecorder := flags.runnerOptions()
			monitor := monitoring.NewMonitor().WithPortNumber(port)
			bar := monitor.CreateProgressBar("Batch", uint64(len(configs)))
			runner := batch.NewRunner(
				append(opts, batch.WithProgressBar(bar))...)

			monitor.RegisterResults(runner.Completed)
			monitor.RegisterSummary(func() any {
				return batch.SummarizeResults(runner.Completed())
			})

			url := monitor.StartServer()
			if open {
				if err := browser.OpenURL(url); err != nil {
					fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
				}
			}

			items := runner.Run(ctx, configs)
			monitor.CompleteProgressBar(bar)

			if err := closeRecorder(); err != nil {
				return err
			}

			if err := printSummary(cmd.OutOrStdout(), flags.summaryTo,
				batch.Summarize(items)); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Serving results at %s, press Ctrl+C to stop\n", url)
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			return monitor.Shutdown(shutdownCtx)
		},
	}

	flags.register(cmd, e)
	cmd.Flags().IntVarP(&port, "port", "p", e.MonitorPort,
		"port of the monitor, 0 picks a free one")
	cmd.Flags().BoolVar(&open, "open", false,
		"open the monitor in a browser")

	return cmd
}
