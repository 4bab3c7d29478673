// SPDX-License-Identifier: MIT

// Package process defines the Provider contract consumed by the Monte Carlo
// engine and ships a handful of reference providers.
//
// 🚀 What is a Provider?
//
//	A Provider draws ONE independent realization of a one-dimensional
//	stochastic process, discretized at a fixed time step over [0, duration]:
//
//	  path, err := p.Simulate(rng, duration, timeStep)
//
//	Every call is an independent, identically distributed draw. All randomness
//	comes from the *rand.Rand handed in by the caller, so a provider keeps no
//	shared mutable state and is safe to call from many goroutines at once.
//
// ✨ Reference providers:
//   - Bm       — Brownian motion, dX = sqrt(2D)·dW
//   - Ou       — Ornstein–Uhlenbeck, dX = −θX·dt + σ·dW
//   - Gbm      — geometric Brownian motion, exact log-normal steps
//   - Langevin — user supplied drift f(x,t) and diffusion g(x,t) callbacks
//
// Any function with the right signature becomes a provider through
// ProviderFunc.
//
// ⚙️ Path invariants (checked by ValidatePath):
//   - len(Times) == len(Positions) ≥ 1
//   - Times[0] == 0, Times non-decreasing
//   - |Times[last] − duration| ≤ timeStep
//
// Time grid used by the reference providers: n = ceil(duration/timeStep)
// steps, Times[i] = i·timeStep for i < n and Times[n] = duration, so the last
// step may be shorter than timeStep.
package process
