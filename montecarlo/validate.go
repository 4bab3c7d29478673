// SPDX-License-Identifier: MIT

package montecarlo

import "math"

// Domain is an interval [a, b] on the real line; a < b is required.
// FPT treats it as open, OccupationTime as closed.
type Domain [2]float64

// Contains reports whether x lies in the closed interval.
func (d Domain) Contains(x float64) bool { return x >= d[0] && x <= d[1] }

// Interior reports whether x lies in the open interval.
func (d Domain) Interior(x float64) bool { return x > d[0] && x < d[1] }

func checkHorizon(op string, duration, timeStep float64) error {
	if !isFinite(duration) || duration <= 0 {
		return invalidf(op, "duration=%g must be finite and > 0", duration)
	}
	if !isFinite(timeStep) || timeStep <= 0 {
		return invalidf(op, "time step=%g must be finite and > 0", timeStep)
	}

	return nil
}

func checkParticles(op string, particles int) error {
	if particles <= 0 {
		return invalidf(op, "particles=%d must be > 0", particles)
	}

	return nil
}

func checkEnsemble(op string, duration, timeStep float64, particles int) error {
	if err := checkHorizon(op, duration, timeStep); err != nil {
		return err
	}

	return checkParticles(op, particles)
}

func checkWindow(op string, duration, delta float64) error {
	if !isFinite(delta) || delta <= 0 || delta >= duration {
		return invalidf(op, "delta=%g must satisfy 0 < delta < duration=%g", delta, duration)
	}

	return nil
}

func checkDomain(op string, d Domain) error {
	if math.IsNaN(d[0]) || math.IsNaN(d[1]) || d[0] >= d[1] {
		return invalidf(op, "domain [%g, %g] must satisfy a < b", d[0], d[1])
	}

	return nil
}

func checkFracOrder(op string, order float64) error {
	if math.IsNaN(order) {
		return invalidf(op, "order is NaN")
	}

	return nil
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
