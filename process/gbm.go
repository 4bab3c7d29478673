// SPDX-License-Identifier: MIT

package process

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

const opGbm = "process: Gbm"

// Gbm is geometric Brownian motion:
//
//	dX = Mu·X·dt + Sigma·X·dW,  X(0) = Start.
//
// Steps use the exact solution X(t+dt) = X(t)·exp((Mu − Sigma²/2)dt + Sigma·ΔW),
// so positivity of Start is preserved along the path.
type Gbm struct {
	Mu    float64
	Sigma float64
	Start float64
}

// NewGbm validates the parameters and returns a geometric Brownian motion provider.
//
// Errors:
//   - ErrInvalidParameter if Sigma < 0 or any value is non-finite.
func NewGbm(mu, sigma, start float64) (Gbm, error) {
	if !isFinite(mu) {
		return Gbm{}, processErrorf(opGbm, fmt.Errorf("%w: mu=%g", ErrInvalidParameter, mu))
	}
	if !isFinite(sigma) || sigma < 0 {
		return Gbm{}, processErrorf(opGbm, fmt.Errorf("%w: sigma=%g must be ≥ 0", ErrInvalidParameter, sigma))
	}
	if !isFinite(start) {
		return Gbm{}, processErrorf(opGbm, fmt.Errorf("%w: start=%g", ErrInvalidParameter, start))
	}

	return Gbm{Mu: mu, Sigma: sigma, Start: start}, nil
}

// Simulate draws one path with exact log-normal increments.
func (g Gbm) Simulate(rng *rand.Rand, duration, timeStep float64) (Path, error) {
	times, err := TimeGrid(duration, timeStep)
	if err != nil {
		return Path{}, processErrorf(opGbm, err)
	}
	r := streamOrDefault(rng)
	pos := make([]float64, len(times))
	pos[0] = g.Start
	drift := g.Mu - 0.5*g.Sigma*g.Sigma
	for i := 1; i < len(times); i++ {
		dt := times[i] - times[i-1]
		pos[i] = pos[i-1] * math.Exp(drift*dt+g.Sigma*math.Sqrt(dt)*r.NormFloat64())
	}

	return Path{Times: times, Positions: pos}, nil
}
