// SPDX-License-Identifier: MIT

package process

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

const opOu = "process: Ou"

// Ou is the Ornstein–Uhlenbeck process reverting to zero:
//
//	dX = −Theta·X·dt + Sigma·dW,  X(0) = Start.
//
// Paths are stepped with Euler–Maruyama.
type Ou struct {
	Theta float64
	Sigma float64
	Start float64
}

// NewOu validates the parameters and returns an Ornstein–Uhlenbeck provider.
//
// Errors:
//   - ErrInvalidParameter if Theta ≤ 0, Sigma < 0 or any value is non-finite.
func NewOu(theta, sigma, start float64) (Ou, error) {
	if !isFinite(theta) || theta <= 0 {
		return Ou{}, processErrorf(opOu, fmt.Errorf("%w: theta=%g must be > 0", ErrInvalidParameter, theta))
	}
	if !isFinite(sigma) || sigma < 0 {
		return Ou{}, processErrorf(opOu, fmt.Errorf("%w: sigma=%g must be ≥ 0", ErrInvalidParameter, sigma))
	}
	if !isFinite(start) {
		return Ou{}, processErrorf(opOu, fmt.Errorf("%w: start=%g", ErrInvalidParameter, start))
	}

	return Ou{Theta: theta, Sigma: sigma, Start: start}, nil
}

// Simulate draws one Euler–Maruyama path.
func (o Ou) Simulate(rng *rand.Rand, duration, timeStep float64) (Path, error) {
	times, err := TimeGrid(duration, timeStep)
	if err != nil {
		return Path{}, processErrorf(opOu, err)
	}
	r := streamOrDefault(rng)
	pos := make([]float64, len(times))
	pos[0] = o.Start
	for i := 1; i < len(times); i++ {
		dt := times[i] - times[i-1]
		x := pos[i-1]
		pos[i] = x - o.Theta*x*dt + o.Sigma*math.Sqrt(dt)*r.NormFloat64()
	}

	return Path{Times: times, Positions: pos}, nil
}
