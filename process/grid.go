// SPDX-License-Identifier: MIT

// Package process - time grids and path validation shared by every provider.
//
// Goals:
//   - One grid rule (Steps) for providers, estimators and quadrature nodes.
//   - The final stamp always equals the requested duration.
//
// Concurrency:
//   - All helpers are pure; a *rand.Rand passed in is never shared.
package process

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// gridTol absorbs representation error in duration/timeStep so that, e.g.,
// 1.1/0.1 = 11.000000000000002 yields 11 steps instead of 12.
const gridTol = 1e-9

// defaultStreamSeed seeds the stream used when a caller passes rng == nil.
const defaultStreamSeed uint64 = 1

const (
	opTimeGrid     = "process: TimeGrid"
	opValidatePath = "process: ValidatePath"
)

// Steps returns ceil(span/timeStep) with a small relative tolerance, i.e. the
// number of time steps needed to cover span. Both inputs are assumed valid.
//
// Complexity: O(1).
func Steps(span, timeStep float64) int {
	q := span / timeStep
	n := math.Ceil(q - gridTol*math.Max(1, q))
	if n < 0 {
		return 0
	}
	return int(n)
}

// TimeGrid returns the time stamps 0, dt, 2dt, …, duration used by the
// reference providers. The final stamp is exactly duration.
//
// Errors:
//   - ErrInvalidParameter if duration < 0, timeStep ≤ 0 or either is non-finite.
//
// Complexity:
//   - Time O(n), Space O(n) with n = Steps(duration, timeStep).
func TimeGrid(duration, timeStep float64) ([]float64, error) {
	if err := checkHorizon(duration, timeStep); err != nil {
		return nil, processErrorf(opTimeGrid, err)
	}
	n := Steps(duration, timeStep)
	times := make([]float64, n+1)
	for i := 1; i < n; i++ {
		times[i] = float64(i) * timeStep
	}
	times[n] = duration

	return times, nil
}

// ValidatePath checks the Path invariants against the requested horizon.
//
// Errors:
//   - ErrMalformedPath (wrapped with the violated rule).
//
// Complexity:
//   - Time O(len(p.Times)), Space O(1).
func ValidatePath(p Path, duration, timeStep float64) error {
	n := len(p.Times)
	if n == 0 || n != len(p.Positions) {
		return processErrorf(opValidatePath,
			fmt.Errorf("%w: len(times)=%d len(positions)=%d", ErrMalformedPath, n, len(p.Positions)))
	}
	if p.Times[0] != 0 {
		return processErrorf(opValidatePath,
			fmt.Errorf("%w: times[0]=%g, want 0", ErrMalformedPath, p.Times[0]))
	}
	for i := 1; i < n; i++ {
		if p.Times[i] < p.Times[i-1] {
			return processErrorf(opValidatePath,
				fmt.Errorf("%w: times decrease at index %d", ErrMalformedPath, i))
		}
	}
	if last := p.Duration(); math.Abs(last-duration) > timeStep*(1+gridTol) {
		return processErrorf(opValidatePath,
			fmt.Errorf("%w: last time %g is not within %g of duration %g",
				ErrMalformedPath, last, timeStep, duration))
	}

	return nil
}

// checkHorizon validates a (duration, timeStep) pair.
func checkHorizon(duration, timeStep float64) error {
	if !isFinite(duration) || duration < 0 {
		return fmt.Errorf("%w: duration=%g must be finite and ≥ 0", ErrInvalidParameter, duration)
	}
	if !isFinite(timeStep) || timeStep <= 0 {
		return fmt.Errorf("%w: time step=%g must be finite and > 0", ErrInvalidParameter, timeStep)
	}

	return nil
}

// streamOrDefault returns rng, or a deterministic default stream when rng is nil.
func streamOrDefault(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(defaultStreamSeed))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
