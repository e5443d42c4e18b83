// Package batch runs many independent teleportation runs concurrently and
// summarizes their results.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/qtsim/datarecording"
	"github.com/sarchlab/qtsim/monitoring"
	"github.com/sarchlab/qtsim/teleport"
	"github.com/sarchlab/qtsim/tracing"
)

// Item is the outcome of one configuration of a batch. Exactly one of Result
// and Err is meaningful.
type Item struct {
	Index  int
	Config teleport.RunConfig
	Result teleport.RunResult
	Err    error
}

// An Option configures a Runner.
type Option func(r *Runner)

// WithWorkers sets how many runs execute at the same time. Values below 1 use
// one worker.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n < 1 {
			n = 1
		}

		r.workers = n
	}
}

// WithProgressBar reports the progress of the batch on bar.
func WithProgressBar(bar *monitoring.ProgressBar) Option {
	return func(r *Runner) {
		r.bar = bar
	}
}

// WithRecorder stores every successful result in the runs table of recorder.
func WithRecorder(recorder datarecording.DataRecorder) Option {
	return func(r *Runner) {
		r.recorder = recorder
	}
}

// WithTracer collects the tasks of every run into tracer. The tracer must be
// safe for concurrent use.
func WithTracer(tracer tracing.Tracer) Option {
	return func(r *Runner) {
		r.tracer = tracer
	}
}

// WithRunIDPrefix sets the prefix of the run IDs. The ID of a run is the
// prefix followed by its index.
func WithRunIDPrefix(prefix string) Option {
	return func(r *Runner) {
		r.runIDPrefix = prefix
	}
}

// Runner executes batches of runs. Every run owns its engine, channel and
// protocols, so the only shared state is the bookkeeping kept by the Runner.
type Runner struct {
	workers     int
	bar         *monitoring.ProgressBar
	recorder    datarecording.DataRecorder
	tracer      tracing.Tracer
	runIDPrefix string

	lock      sync.Mutex
	completed []teleport.RunResult
}

// NewRunner creates a Runner with one worker per CPU.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		workers:     runtime.NumCPU(),
		runIDPrefix: "run-",
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.recorder != nil {
		datarecording.CreateRunTable(r.recorder)
	}

	return r
}

// Workers returns the number of concurrent runs.
func (r *Runner) Workers() int {
	return r.workers
}

// Completed returns the results finished so far, in completion order.
func (r *Runner) Completed() []teleport.RunResult {
	r.lock.Lock()
	defer r.lock.Unlock()

	results := make([]teleport.RunResult, len(r.completed))
	copy(results, r.completed)

	return results
}

// Run executes every configuration and returns the items in input order. A
// failed run does not stop the others. Once ctx is done no further run is
// started and the items not started carry ctx.Err().
func (r *Runner) Run(ctx context.Context, configs []teleport.RunConfig) []Item {
	items := make([]Item, len(configs))

	var g errgroup.Group
	g.SetLimit(r.workers)

	for i, cfg := range configs {
		items[i] = Item{Index: i, Config: cfg}

		if err := ctx.Err(); err != nil {
			items[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				return nil
			}

			items[i].Result, items[i].Err = r.runOne(i, cfg)

			return nil
		})
	}

	_ = g.Wait()

	return items
}

func (r *Runner) runOne(index int, cfg teleport.RunConfig) (teleport.RunResult, error) {
	if r.bar != nil {
		r.bar.IncrementInProgress(1)
		defer r.bar.MoveInProgressToFinished(1)
	}

	b := teleport.MakeBuilder().
		WithConfig(cfg).
		WithRunID(fmt.Sprintf("%s%d", r.runIDPrefix, index))
	if r.tracer != nil {
		b = b.WithTracer(r.tracer)
	}

	s, err := b.Build()
	if err != nil {
		return teleport.RunResult{}, err
	}

	res, err := s.Run()
	if err != nil {
		return teleport.RunResult{}, err
	}

	r.lock.Lock()
	r.completed = append(r.completed, res)
	r.lock.Unlock()

	if r.recorder != nil {
		r.recorder.InsertData(datarecording.RunTable, ToRecord(res))
	}

	return res, nil
}

// Results returns the results of the successful items, in input order.
func Results(items []Item) []teleport.RunResult {
	results := make([]teleport.RunResult, 0, len(items))
	for _, item := range items {
		if item.Err == nil {
			results = append(results, item.Result)
		}
	}

	return results
}

// ToRecord flattens a result into a storable record.
func ToRecord(res teleport.RunResult) datarecording.RunRecord {
	outcome, _ := res.Outcome.MarshalText()

	return datarecording.RunRecord{
		RunID:              res.RunID,
		InitialState:       res.InitialState.String(),
		BellType:           res.BellType.String(),
		Outcome:            string(outcome),
		Correction:         res.Correction.String(),
		ReconstructedState: res.ReconstructedState.String(),
		Fidelity:           res.Fidelity,
		ChannelDelay:       res.Config.ChannelDelay,
		StartTime:          res.Config.StartTime,
		CorrectionDelay:    res.Config.CorrectionDelay,
		SentAt:             uint64(res.SentAt),
		DeliveredAt:        uint64(res.DeliveredAt),
		CorrectedAt:        uint64(res.CorrectedAt),
		EventsProcessed:    res.EventsProcessed,
	}
}
