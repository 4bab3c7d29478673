// SPDX-License-Identifier: MIT

package process

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

const opBm = "process: Bm"

// Bm is Brownian motion started at Start with diffusion coefficient D:
//
//	dX = sqrt(2D)·dW,  X(0) = Start,  E[(X(t)−X(0))²] = 2·D·t.
//
// D == 0 is accepted and yields the constant path, which makes the provider
// usable as a deterministic fixture.
type Bm struct {
	Start float64
	D     float64
}

// NewBm validates the parameters and returns a Brownian motion provider.
//
// Errors:
//   - ErrInvalidParameter if Start is non-finite or D is negative/non-finite.
func NewBm(start, d float64) (Bm, error) {
	if !isFinite(start) {
		return Bm{}, processErrorf(opBm, fmt.Errorf("%w: start=%g", ErrInvalidParameter, start))
	}
	if !isFinite(d) || d < 0 {
		return Bm{}, processErrorf(opBm, fmt.Errorf("%w: diffusion coefficient=%g must be ≥ 0", ErrInvalidParameter, d))
	}

	return Bm{Start: start, D: d}, nil
}

// Simulate draws one path with exact Gaussian increments.
func (b Bm) Simulate(rng *rand.Rand, duration, timeStep float64) (Path, error) {
	times, err := TimeGrid(duration, timeStep)
	if err != nil {
		return Path{}, processErrorf(opBm, err)
	}
	r := streamOrDefault(rng)
	pos := make([]float64, len(times))
	pos[0] = b.Start
	scale := math.Sqrt(2 * b.D)
	for i := 1; i < len(times); i++ {
		dt := times[i] - times[i-1]
		pos[i] = pos[i-1] + scale*math.Sqrt(dt)*r.NormFloat64()
	}

	return Path{Times: times, Positions: pos}, nil
}
