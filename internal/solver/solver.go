// Package solver finds the largest first-year monthly withdrawal that a
// retirement balance can sustain over a fixed horizon, by bisecting over
// the depletion simulator.
package solver

import (
	"math"

	"github.com/theirongolddev/kwsp/internal/log"
	"github.com/theirongolddev/kwsp/internal/model"
	"github.com/theirongolddev/kwsp/internal/sim"
)

const (
	// MinWithdrawal is the lower search bound, in the balance's currency.
	MinWithdrawal = 100.0
	// Tolerance is how close to zero the final balance must land.
	Tolerance = 100.0
	// MaxIterations bounds the bisection.
	MaxIterations = 100

	targetBalance = 0.0
)

type options struct {
	logger *log.Logger
}

// Option configures Solve.
type Option func(*options)

// WithLogger logs each bisection step at debug level.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l.WithComponent(log.ComponentSolver)
		}
	}
}

// Solve validates params and bisects over the base withdrawal until the
// simulated final balance is within Tolerance of zero. If MaxIterations pass
// without convergence the last midpoint is used and Converged is false.
//
// The search assumes the final balance never increases as the withdrawal
// grows. That holds for fixed rates; anything that makes returns depend on
// the withdrawal path has to re-check it.
func Solve(params model.ScenarioParameters, opts ...Option) (*model.SolverResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: log.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With(log.FieldYears, params.Years)

	low := MinWithdrawal
	high := 2 * params.InitialBalance / (12 * float64(params.Years))

	var mid, final float64
	converged := false
	iterations := 0
	for iterations < MaxIterations {
		iterations++
		mid = (low + high) / 2
		final = sim.Run(params, mid).FinalBalance

		logger.Debug("bisect",
			log.FieldIteration, iterations,
			log.FieldWithdrawal, mid,
			log.FieldBalance, final,
		)

		if math.Abs(final-targetBalance) < Tolerance {
			converged = true
			break
		}
		if final > targetBalance {
			low = mid
		} else {
			high = mid
		}
	}

	if converged {
		logger.Debug("converged", log.FieldIteration, iterations, log.FieldWithdrawal, mid)
	} else {
		logger.Warn("search did not converge",
			log.FieldIteration, iterations,
			log.FieldWithdrawal, mid,
			log.FieldBalance, final,
		)
	}

	return assemble(params, mid, converged, iterations), nil
}

// assemble re-runs the simulation with a trace for the accepted withdrawal.
func assemble(params model.ScenarioParameters, start float64, converged bool, iterations int) *model.SolverResult {
	final, trace := sim.Simulate(params, start, true)
	schedule := model.NewWithdrawalSchedule(start, params.InflationRate, params.Years)

	return &model.SolverResult{
		Params:           params,
		StartWithdrawal:  start,
		FinalBalance:     final,
		TotalWithdrawals: schedule.Total(),
		TotalDividends:   trace.TotalDividends(),
		Schedule:         schedule,
		Trace:            trace,
		Converged:        converged,
		Iterations:       iterations,
	}
}

// Calculate is the entry point for front ends: rates are percentages
// (5.2 means 5.2%) and are converted to fractions before solving.
func Calculate(initialBalance, dividendRatePercent, inflationRatePercent float64, years int, opts ...Option) (*model.SolverResult, error) {
	return Solve(model.FromPercent(initialBalance, dividendRatePercent, inflationRatePercent, years), opts...)
}
