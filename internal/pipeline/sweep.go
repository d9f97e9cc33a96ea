// Package pipeline runs many independent withdrawal calculations in parallel.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/kwsp/internal/config"
	"github.com/theirongolddev/kwsp/internal/log"
	"github.com/theirongolddev/kwsp/internal/model"
	"github.com/theirongolddev/kwsp/internal/solver"
)

// ProgressFunc is called after each scenario finishes.
// current is the number solved so far, total is the scenario count.
// Calls are serialized and current strictly increases.
type ProgressFunc func(current, total int)

// Options tunes a sweep.
type Options struct {
	Workers  int // defaults to GOMAXPROCS
	Progress ProgressFunc
	Logger   *log.Logger
}

// Outcome pairs a scenario with its result or its validation error.
type Outcome struct {
	Scenario config.Scenario
	Result   *model.SolverResult
	Err      error
}

// Sweep solves every scenario with a bounded worker pool. Outcomes keep the
// input order. A scenario that fails validation records its error in its
// Outcome and does not stop the others; only context cancellation aborts
// the sweep.
func Sweep(ctx context.Context, scenarios []config.Scenario, opts Options) ([]Outcome, error) {
	outcomes := make([]Outcome, len(scenarios))
	if len(scenarios) == 0 {
		return outcomes, nil
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(scenarios))

	logger := opts.Logger
	if logger == nil {
		logger = log.Nop()
	}
	logger = logger.WithComponent(log.ComponentPipeline)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		progressMu sync.Mutex
		done       int
	)
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := solver.Solve(sc.Params())
			outcomes[i] = Outcome{Scenario: sc, Result: res, Err: err}
			if err != nil {
				logger.Debug("scenario rejected", "name", sc.Name, log.FieldError, err)
			}

			progressMu.Lock()
			done++
			if opts.Progress != nil {
				opts.Progress(done, len(scenarios))
			}
			progressMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sweep interrupted: %w", err)
	}
	return outcomes, nil
}

// YearsGrid expands base into one scenario per horizon in [from, to].
func YearsGrid(base config.Scenario, from, to int) []config.Scenario {
	if to < from {
		return nil
	}
	out := make([]config.Scenario, 0, to-from+1)
	for y := from; y <= to; y++ {
		sc := base
		sc.Years = y
		sc.Name = fmt.Sprintf("%dy", y)
		out = append(out, sc)
	}
	return out
}

// RateGrid expands base into one scenario per dividend rate, stepping
// from..to (inclusive, percent) by step.
func RateGrid(base config.Scenario, from, to, step float64) []config.Scenario {
	if step <= 0 || to < from {
		return nil
	}
	n := int((to-from)/step+1e-9) + 1
	out := make([]config.Scenario, 0, n)
	for i := 0; i < n; i++ {
		sc := base
		sc.DividendRatePercent = from + float64(i)*step
		sc.Name = fmt.Sprintf("%.2f%%", sc.DividendRatePercent)
		out = append(out, sc)
	}
	return out
}
