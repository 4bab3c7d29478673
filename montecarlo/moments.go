// SPDX-License-Identifier: MIT

package montecarlo

import (
	"context"
	"math"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/diffusionx/process"
)

// Mean estimates E[X_T] from particles independent paths on [0, duration].
//
// Errors:
//   - ErrInvalidParameter if duration or timeStep is not finite and > 0, or particles ≤ 0.
//   - ErrProvider on the first failing sample.
//   - ctx.Err() if ctx is cancelled.
func (e *Engine) Mean(ctx context.Context, p process.Provider, duration, timeStep float64, particles int) (float64, error) {
	return observe(e, opMean, ensembleAttrs(duration, timeStep, particles), func() (float64, error) {
		if err := checkEnsemble(opMean, duration, timeStep, particles); err != nil {
			return 0, err
		}
		return e.terminalAverage(ctx, opMean, p, duration, timeStep, particles, process.Path.End)
	})
}

// MSD estimates E[(X_T − X_0)²], X_0 being each path's own first position.
func (e *Engine) MSD(ctx context.Context, p process.Provider, duration, timeStep float64, particles int) (float64, error) {
	return observe(e, opMSD, ensembleAttrs(duration, timeStep, particles), func() (float64, error) {
		if err := checkEnsemble(opMSD, duration, timeStep, particles); err != nil {
			return 0, err
		}
		return e.terminalAverage(ctx, opMSD, p, duration, timeStep, particles, func(path process.Path) float64 {
			d := path.End() - path.Start()
			return d * d
		})
	})
}

// RawMoment estimates E[X_T^order]. Order 0 and negative orders are
// accepted; a zero terminal value under a negative order yields ±Inf.
func (e *Engine) RawMoment(ctx context.Context, p process.Provider, order int, duration, timeStep float64, particles int) (float64, error) {
	attrs := append(ensembleAttrs(duration, timeStep, particles), "order", order)
	return observe(e, opRawMoment, attrs, func() (float64, error) {
		if err := checkEnsemble(opRawMoment, duration, timeStep, particles); err != nil {
			return 0, err
		}
		return e.terminalAverage(ctx, opRawMoment, p, duration, timeStep, particles, func(path process.Path) float64 {
			return powi(path.End(), order)
		})
	})
}

// CentralMoment estimates E[(X_T − μ)^order] in two independent passes:
// the first estimates μ from particles paths, the second averages
// (x − μ)^order over a fresh batch of particles paths.
//
// Determinism:
//   - Each pass reserves its own call number; the batches draw distinct streams.
//
// Complexity:
//   - Time O(2·particles·⌈duration/timeStep⌉), Space O(particles).
func (e *Engine) CentralMoment(ctx context.Context, p process.Provider, order int, duration, timeStep float64, particles int) (float64, error) {
	attrs := append(ensembleAttrs(duration, timeStep, particles), "order", order)
	return observe(e, opCentralMoment, attrs, func() (float64, error) {
		if err := checkEnsemble(opCentralMoment, duration, timeStep, particles); err != nil {
			return 0, err
		}
		mu, err := e.terminalAverage(ctx, opCentralMoment, p, duration, timeStep, particles, process.Path.End)
		if err != nil {
			return 0, err
		}
		return e.terminalAverage(ctx, opCentralMoment, p, duration, timeStep, particles, func(path process.Path) float64 {
			return powi(path.End()-mu, order)
		})
	})
}

// FracRawMoment estimates E[X_T^order] for a real order with math.Pow.
// Negative terminal values under a non-integer order yield NaN.
func (e *Engine) FracRawMoment(ctx context.Context, p process.Provider, order, duration, timeStep float64, particles int) (float64, error) {
	attrs := append(ensembleAttrs(duration, timeStep, particles), "order", order)
	return observe(e, opFracRawMoment, attrs, func() (float64, error) {
		if err := checkEnsemble(opFracRawMoment, duration, timeStep, particles); err != nil {
			return 0, err
		}
		if err := checkFracOrder(opFracRawMoment, order); err != nil {
			return 0, err
		}
		return e.terminalAverage(ctx, opFracRawMoment, p, duration, timeStep, particles, func(path process.Path) float64 {
			return math.Pow(path.End(), order)
		})
	})
}

// FracCentralMoment estimates E[(X_T − μ)^order] for a real order, with the
// same two-pass scheme as CentralMoment.
func (e *Engine) FracCentralMoment(ctx context.Context, p process.Provider, order, duration, timeStep float64, particles int) (float64, error) {
	attrs := append(ensembleAttrs(duration, timeStep, particles), "order", order)
	return observe(e, opFracCentralMoment, attrs, func() (float64, error) {
		if err := checkEnsemble(opFracCentralMoment, duration, timeStep, particles); err != nil {
			return 0, err
		}
		if err := checkFracOrder(opFracCentralMoment, order); err != nil {
			return 0, err
		}
		mu, err := e.terminalAverage(ctx, opFracCentralMoment, p, duration, timeStep, particles, process.Path.End)
		if err != nil {
			return 0, err
		}
		return e.terminalAverage(ctx, opFracCentralMoment, p, duration, timeStep, particles, func(path process.Path) float64 {
			return math.Pow(path.End()-mu, order)
		})
	})
}

// terminalAverage averages f over particles fresh paths on [0, duration].
func (e *Engine) terminalAverage(ctx context.Context, op string, p process.Provider, duration, timeStep float64, particles int, f func(process.Path) float64) (float64, error) {
	return e.average(ctx, particles, func(_ context.Context, rng *rand.Rand, i int) (float64, error) {
		path, err := e.draw(op, p, rng, i, duration, timeStep)
		if err != nil {
			return 0, err
		}
		return f(path), nil
	})
}

// powi returns x**n for an integer n.
// Complexity: O(1).
func powi(x float64, n int) float64 {
	switch n {
	case 1:
		return x
	case 2:
		return x * x
	}
	return math.Pow(x, float64(n))
}

func ensembleAttrs(duration, timeStep float64, particles int) []any {
	return []any{"duration", duration, "time_step", timeStep, "particles", particles}
}
