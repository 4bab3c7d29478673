// SPDX-License-Identifier: MIT

package montecarlo

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/diffusionx/pool"
	"github.com/katalvlaran/diffusionx/process"
)

// Operation names used in errors, logs and observer events.
const (
	opMean              = "mean"
	opMSD               = "msd"
	opRawMoment         = "raw_moment"
	opCentralMoment     = "central_moment"
	opFracRawMoment     = "frac_raw_moment"
	opFracCentralMoment = "frac_central_moment"
	opTAMSD             = "tamsd"
	opEATAMSD           = "eatamsd"
	opFPT               = "fpt"
	opFPTRawMoment      = "fpt_raw_moment"
	opFPTCentralMoment  = "fpt_central_moment"
	opOccupation        = "occupation_time"
	opOccRawMoment      = "occupation_time_raw_moment"
	opOccCentralMoment  = "occupation_time_central_moment"
	opSimulate          = "simulate"
	opSummary           = "terminal_summary"
)

// Engine computes ensemble statistics of process providers.
//
// An Engine is safe for concurrent use. Results are reproducible for a
// seeded Engine only when its calls are issued in the same order.
type Engine struct {
	opts  Options
	calls atomic.Uint64
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	return &Engine{opts: gatherOptions(opts...)}
}

// Seed returns the base seed of the engine.
func (e *Engine) Seed() uint64 { return e.opts.seed }

// Pool returns the worker pool samples run on.
func (e *Engine) Pool() *pool.Pool { return e.opts.pool }

// sampleFunc computes the contribution of sample i from its own stream.
type sampleFunc func(ctx context.Context, rng *rand.Rand, i int) (float64, error)

// pass reserves one call number and evaluates fn for n samples on the pool.
// Contributions are returned by sample index.
func (e *Engine) pass(ctx context.Context, n int, fn sampleFunc) ([]float64, error) {
	base := deriveSeed(e.opts.seed, e.calls.Add(1)-1)

	return e.opts.pool.Map(ctx, n, func(ctx context.Context, i int) (float64, error) {
		return fn(ctx, streamFor(deriveSeed(base, uint64(i))), i)
	})
}

// average runs one pass and reduces it in index order.
func (e *Engine) average(ctx context.Context, n int, fn sampleFunc) (float64, error) {
	vals, err := e.pass(ctx, n, fn)
	if err != nil {
		return 0, err
	}

	return floats.Sum(vals) / float64(n), nil
}

// draw asks p for one path, validates it and reports the outcome to the
// observer. Failures come back as *ProviderError.
func (e *Engine) draw(op string, p process.Provider, rng *rand.Rand, i int, duration, timeStep float64) (process.Path, error) {
	path, err := p.Simulate(rng, duration, timeStep)
	if err == nil {
		err = process.ValidatePath(path, duration, timeStep)
	}
	e.opts.observer.ObserveSample(op, err)
	if err != nil {
		return process.Path{}, &ProviderError{Op: op, Sample: i, Err: err}
	}

	return path, nil
}

// observe times f, logs it and reports it to the observer.
func observe[T any](e *Engine, op string, attrs []any, f func() (T, error)) (T, error) {
	log := e.opts.logger.With(append([]any{"op", op}, attrs...)...)
	log.Debug("estimate started")
	start := time.Now()

	v, err := f()
	elapsed := time.Since(start)
	e.opts.observer.ObserveEstimate(op, elapsed, err)
	if err != nil {
		lvl := slog.LevelDebug
		if isProviderFailure(err) {
			lvl = slog.LevelWarn
		}
		log.Log(context.Background(), lvl, "estimate failed", "elapsed", elapsed, "err", err)
		return v, err
	}
	log.Debug("estimate finished", "elapsed", elapsed)

	return v, nil
}
