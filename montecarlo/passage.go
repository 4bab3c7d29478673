// SPDX-License-Identifier: MIT

package montecarlo

import (
	"context"
	"errors"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/diffusionx/process"
)

// passage is an FPT-style result: ok is false when some path never exited.
type passage struct {
	value float64
	ok    bool
}

// FPT draws one path on [0, maxDuration] and returns the first time it is
// outside the open domain (a, b). ok is false if the path never leaves it.
// A path that starts outside the domain has first passage time 0.
func (e *Engine) FPT(ctx context.Context, p process.Provider, domain Domain, maxDuration, timeStep float64) (float64, bool, error) {
	attrs := []any{"domain", domain, "max_duration", maxDuration, "time_step", timeStep}
	r, err := observe(e, opFPT, attrs, func() (passage, error) {
		if err := checkPassage(opFPT, domain, maxDuration, timeStep); err != nil {
			return passage{}, err
		}
		return e.fptAverage(ctx, opFPT, p, domain, maxDuration, timeStep, 1, func(t float64) float64 { return t })
	})

	return r.value, r.ok, err
}

// FPTRawMoment averages FPT^order over particles paths. ok is false if any
// path never exits within maxDuration; no partial average is returned.
//
// Complexity:
//   - Time O(particles·⌈maxDuration/timeStep⌉), Space O(particles) plus one path per worker.
func (e *Engine) FPTRawMoment(ctx context.Context, p process.Provider, domain Domain, order, particles int, maxDuration, timeStep float64) (float64, bool, error) {
	attrs := []any{"domain", domain, "order", order, "particles", particles, "max_duration", maxDuration, "time_step", timeStep}
	r, err := observe(e, opFPTRawMoment, attrs, func() (passage, error) {
		if err := checkPassage(opFPTRawMoment, domain, maxDuration, timeStep); err != nil {
			return passage{}, err
		}
		if err := checkParticles(opFPTRawMoment, particles); err != nil {
			return passage{}, err
		}
		return e.fptAverage(ctx, opFPTRawMoment, p, domain, maxDuration, timeStep, particles, func(t float64) float64 {
			return powi(t, order)
		})
	})

	return r.value, r.ok, err
}

// FPTCentralMoment averages (FPT − μ)^order with the two-pass scheme of
// CentralMoment. ok is false if a path of either pass never exits.
func (e *Engine) FPTCentralMoment(ctx context.Context, p process.Provider, domain Domain, order, particles int, maxDuration, timeStep float64) (float64, bool, error) {
	attrs := []any{"domain", domain, "order", order, "particles", particles, "max_duration", maxDuration, "time_step", timeStep}
	r, err := observe(e, opFPTCentralMoment, attrs, func() (passage, error) {
		if err := checkPassage(opFPTCentralMoment, domain, maxDuration, timeStep); err != nil {
			return passage{}, err
		}
		if err := checkParticles(opFPTCentralMoment, particles); err != nil {
			return passage{}, err
		}
		mu, err := e.fptAverage(ctx, opFPTCentralMoment, p, domain, maxDuration, timeStep, particles, func(t float64) float64 { return t })
		if err != nil || !mu.ok {
			return passage{}, err
		}
		return e.fptAverage(ctx, opFPTCentralMoment, p, domain, maxDuration, timeStep, particles, func(t float64) float64 {
			return powi(t-mu.value, order)
		})
	})

	return r.value, r.ok, err
}

// OccupationTime draws one path on [0, duration] and returns the time it
// spends in the closed domain [a, b]: the sum of t[i+1] − t[i] over steps
// whose left endpoint lies in the domain.
func (e *Engine) OccupationTime(ctx context.Context, p process.Provider, domain Domain, duration, timeStep float64) (float64, error) {
	attrs := []any{"domain", domain, "duration", duration, "time_step", timeStep}
	return observe(e, opOccupation, attrs, func() (float64, error) {
		if err := checkPassage(opOccupation, domain, duration, timeStep); err != nil {
			return 0, err
		}
		return e.occupationAverage(ctx, opOccupation, p, domain, duration, timeStep, 1, func(t float64) float64 { return t })
	})
}

// OccupationTimeRawMoment averages occupation^order over particles paths.
func (e *Engine) OccupationTimeRawMoment(ctx context.Context, p process.Provider, domain Domain, order, particles int, duration, timeStep float64) (float64, error) {
	attrs := []any{"domain", domain, "order", order, "particles", particles, "duration", duration, "time_step", timeStep}
	return observe(e, opOccRawMoment, attrs, func() (float64, error) {
		if err := checkPassage(opOccRawMoment, domain, duration, timeStep); err != nil {
			return 0, err
		}
		if err := checkParticles(opOccRawMoment, particles); err != nil {
			return 0, err
		}
		return e.occupationAverage(ctx, opOccRawMoment, p, domain, duration, timeStep, particles, func(t float64) float64 {
			return powi(t, order)
		})
	})
}

// OccupationTimeCentralMoment averages (occupation − μ)^order in two passes.
func (e *Engine) OccupationTimeCentralMoment(ctx context.Context, p process.Provider, domain Domain, order, particles int, duration, timeStep float64) (float64, error) {
	attrs := []any{"domain", domain, "order", order, "particles", particles, "duration", duration, "time_step", timeStep}
	return observe(e, opOccCentralMoment, attrs, func() (float64, error) {
		if err := checkPassage(opOccCentralMoment, domain, duration, timeStep); err != nil {
			return 0, err
		}
		if err := checkParticles(opOccCentralMoment, particles); err != nil {
			return 0, err
		}
		mu, err := e.occupationAverage(ctx, opOccCentralMoment, p, domain, duration, timeStep, particles, func(t float64) float64 { return t })
		if err != nil {
			return 0, err
		}
		return e.occupationAverage(ctx, opOccCentralMoment, p, domain, duration, timeStep, particles, func(t float64) float64 {
			return powi(t-mu, order)
		})
	})
}

// Simulate draws one validated path on [0, duration].
func (e *Engine) Simulate(ctx context.Context, p process.Provider, duration, timeStep float64) (process.Path, error) {
	attrs := []any{"duration", duration, "time_step", timeStep}
	return observe(e, opSimulate, attrs, func() (process.Path, error) {
		if err := checkHorizon(opSimulate, duration, timeStep); err != nil {
			return process.Path{}, err
		}
		if err := ctx.Err(); err != nil {
			return process.Path{}, err
		}
		base := deriveSeed(e.opts.seed, e.calls.Add(1)-1)
		return e.draw(opSimulate, p, streamFor(deriveSeed(base, 0)), 0, duration, timeStep)
	})
}

// fptAverage averages f(FPT) over n paths, aborting on the first path
// without passage.
func (e *Engine) fptAverage(ctx context.Context, op string, p process.Provider, domain Domain, maxDuration, timeStep float64, n int, f func(float64) float64) (passage, error) {
	v, err := e.average(ctx, n, func(_ context.Context, rng *rand.Rand, i int) (float64, error) {
		path, err := e.draw(op, p, rng, i, maxDuration, timeStep)
		if err != nil {
			return 0, err
		}
		t, ok := firstPassage(path, domain)
		if !ok {
			return 0, errNoPassage
		}
		return f(t), nil
	})
	if errors.Is(err, errNoPassage) {
		return passage{}, nil
	}
	if err != nil {
		return passage{}, err
	}

	return passage{value: v, ok: true}, nil
}

// occupationAverage averages f(occupation time) over n paths.
func (e *Engine) occupationAverage(ctx context.Context, op string, p process.Provider, domain Domain, duration, timeStep float64, n int, f func(float64) float64) (float64, error) {
	return e.average(ctx, n, func(_ context.Context, rng *rand.Rand, i int) (float64, error) {
		path, err := e.draw(op, p, rng, i, duration, timeStep)
		if err != nil {
			return 0, err
		}
		return f(occupation(path, domain)), nil
	})
}

// firstPassage returns the first time stamp whose position is outside the
// open domain.
//
// Complexity:
//   - Time O(len(path.Times)) worst case, stops at the first exit; Space O(1).
func firstPassage(path process.Path, domain Domain) (float64, bool) {
	for i, x := range path.Positions {
		if !domain.Interior(x) {
			return path.Times[i], true
		}
	}

	return 0, false
}

// occupation returns the time path spends in the closed domain.
//
// Complexity:
//   - Time O(len(path.Times)), Space O(1).
func occupation(path process.Path, domain Domain) float64 {
	var total float64
	for i := 0; i+1 < path.Len(); i++ {
		if domain.Contains(path.Positions[i]) {
			total += path.Times[i+1] - path.Times[i]
		}
	}

	return total
}

func checkPassage(op string, domain Domain, duration, timeStep float64) error {
	if err := checkHorizon(op, duration, timeStep); err != nil {
		return err
	}

	return checkDomain(op, domain)
}
