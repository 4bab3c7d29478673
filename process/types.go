// SPDX-License-Identifier: MIT

package process

import "golang.org/x/exp/rand"

// Provider draws one independent realization of a process path.
//
// Implementations must take every random variate from rng and must not
// mutate shared state: the engine calls Simulate concurrently from several
// workers, each with its own stream.
type Provider interface {
	Simulate(rng *rand.Rand, duration, timeStep float64) (Path, error)
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func(rng *rand.Rand, duration, timeStep float64) (Path, error)

// Simulate calls f(rng, duration, timeStep).
func (f ProviderFunc) Simulate(rng *rand.Rand, duration, timeStep float64) (Path, error) {
	return f(rng, duration, timeStep)
}

// Path is a discretized trajectory: Positions[i] is the value at Times[i].
// A Path is owned by whoever received it; providers never retain it.
type Path struct {
	Times     []float64
	Positions []float64
}

// Len returns the number of samples in the path.
func (p Path) Len() int { return len(p.Positions) }

// Start returns the first position. It panics on an empty path.
func (p Path) Start() float64 { return p.Positions[0] }

// End returns the last position. It panics on an empty path.
func (p Path) End() float64 { return p.Positions[len(p.Positions)-1] }

// Duration returns the last time stamp, or 0 for an empty path.
func (p Path) Duration() float64 {
	if len(p.Times) == 0 {
		return 0
	}
	return p.Times[len(p.Times)-1]
}
