// SPDX-License-Identifier: MIT

package process

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/exp/rand"
)

const opLangevin = "process: Langevin"

// CoefficientFunc is a drift or diffusion coefficient evaluated at position x
// and time t. Callbacks are synchronous and may be arbitrarily slow.
type CoefficientFunc func(x, t float64) float64

// LangevinOption configures a Langevin provider.
type LangevinOption func(*Langevin)

// WithExclusiveCallbacks serializes every drift/diffusion evaluation behind
// one mutex shared by all concurrent Simulate calls. Use it for callbacks
// that are not safe for concurrent use; the engine fan-out then degrades to
// one callback at a time while path bookkeeping still runs in parallel.
func WithExclusiveCallbacks() LangevinOption {
	return func(l *Langevin) { l.mu = new(sync.Mutex) }
}

// Langevin is a diffusion defined by user callbacks:
//
//	dX = f(X,t)·dt + g(X,t)·dW,  X(0) = start.
//
// It is stepped with Euler–Maruyama; f and g are evaluated at the left end of
// each step.
type Langevin struct {
	drift     CoefficientFunc
	diffusion CoefficientFunc
	start     float64
	mu        *sync.Mutex // non-nil ⇒ callbacks are serialized
}

// NewLangevin wraps a drift/diffusion pair into a provider.
//
// Errors:
//   - ErrInvalidParameter if a callback is nil or start is non-finite.
func NewLangevin(drift, diffusion CoefficientFunc, start float64, opts ...LangevinOption) (*Langevin, error) {
	if drift == nil || diffusion == nil {
		return nil, processErrorf(opLangevin, fmt.Errorf("%w: drift and diffusion callbacks are required", ErrInvalidParameter))
	}
	if !isFinite(start) {
		return nil, processErrorf(opLangevin, fmt.Errorf("%w: start=%g", ErrInvalidParameter, start))
	}
	l := &Langevin{drift: drift, diffusion: diffusion, start: start}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Start returns the initial position.
func (l *Langevin) Start() float64 { return l.start }

// Simulate draws one path, calling the coefficient callbacks once per step.
//
// Errors:
//   - ErrInvalidParameter for a bad horizon.
//   - ErrNonFinite if a callback returns NaN/±Inf or the state diverges.
func (l *Langevin) Simulate(rng *rand.Rand, duration, timeStep float64) (Path, error) {
	times, err := TimeGrid(duration, timeStep)
	if err != nil {
		return Path{}, processErrorf(opLangevin, err)
	}
	r := streamOrDefault(rng)
	pos := make([]float64, len(times))
	pos[0] = l.start

	var f, g float64
	for i := 1; i < len(times); i++ {
		t := times[i-1]
		x := pos[i-1]
		dt := times[i] - t
		f, g = l.coefficients(x, t)
		if !isFinite(f) || !isFinite(g) {
			return Path{}, processErrorf(opLangevin,
				fmt.Errorf("%w: drift=%g diffusion=%g at x=%g t=%g", ErrNonFinite, f, g, x, t))
		}
		pos[i] = x + f*dt + g*math.Sqrt(dt)*r.NormFloat64()
		if !isFinite(pos[i]) {
			return Path{}, processErrorf(opLangevin,
				fmt.Errorf("%w: state diverged at t=%g", ErrNonFinite, times[i]))
		}
	}

	return Path{Times: times, Positions: pos}, nil
}

func (l *Langevin) coefficients(x, t float64) (float64, float64) {
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	return l.drift(x, t), l.diffusion(x, t)
}
