// SPDX-License-Identifier: MIT

package montecarlo

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/diffusionx/process"
	"github.com/katalvlaran/diffusionx/quadrature"
)

// TAMSD estimates the time-averaged MSD
//
//	(1/(T−Δ)) ∫₀^{T−Δ} (X(t+Δ) − X(t))² dt
//
// with a quadOrder-point Gauss–Legendre rule on [0, T−Δ]. Every node t draws
// its own path on [0, t+Δ] and contributes w·(x[n−1] − x[n−1−lag])², where
// lag = ⌈Δ/timeStep⌉. Nodes are sampled in parallel.
//
// Errors:
//   - ErrInvalidParameter unless 0 < delta < duration, for a bad horizon, or
//     when a path is shorter than the lag.
//   - ErrQuadrature (and quadrature.ErrInvalidOrder) if quadOrder < 2.
//   - ErrProvider on the first failing node.
//
// Complexity:
//   - Time O(quadOrder·⌈duration/timeStep⌉), Space O(quadOrder) plus one path per worker.
func (e *Engine) TAMSD(ctx context.Context, p process.Provider, duration, delta, timeStep float64, quadOrder int) (float64, error) {
	attrs := []any{"duration", duration, "delta", delta, "time_step", timeStep, "quad_order", quadOrder}
	return observe(e, opTAMSD, attrs, func() (float64, error) {
		rule, err := tamsdRule(opTAMSD, duration, delta, timeStep, quadOrder)
		if err != nil {
			return 0, err
		}
		lag := process.Steps(delta, timeStep)
		vals, err := e.pass(ctx, rule.Len(), func(_ context.Context, rng *rand.Rand, i int) (float64, error) {
			return e.tamsdNode(opTAMSD, p, rng, i, rule.Nodes[i], rule.Weights[i], delta, timeStep, lag)
		})
		if err != nil {
			return 0, err
		}
		return floats.Sum(vals) / (duration - delta), nil
	})
}

// EATAMSD averages particles independent TAMSD estimates. Particles are
// sampled in parallel; the nodes of one particle are drawn sequentially from
// that particle's stream.
func (e *Engine) EATAMSD(ctx context.Context, p process.Provider, duration, delta float64, particles int, timeStep float64, quadOrder int) (float64, error) {
	attrs := []any{"duration", duration, "delta", delta, "particles", particles, "time_step", timeStep, "quad_order", quadOrder}
	return observe(e, opEATAMSD, attrs, func() (float64, error) {
		if err := checkParticles(opEATAMSD, particles); err != nil {
			return 0, err
		}
		rule, err := tamsdRule(opEATAMSD, duration, delta, timeStep, quadOrder)
		if err != nil {
			return 0, err
		}
		lag := process.Steps(delta, timeStep)
		span := duration - delta
		return e.average(ctx, particles, func(ctx context.Context, rng *rand.Rand, i int) (float64, error) {
			var sum float64
			for k := range rule.Nodes {
				if err := ctx.Err(); err != nil {
					return 0, err
				}
				v, err := e.tamsdNode(opEATAMSD, p, rng, i, rule.Nodes[k], rule.Weights[k], delta, timeStep, lag)
				if err != nil {
					return 0, err
				}
				sum += v
			}
			return sum / span, nil
		})
	})
}

// tamsdRule validates the TAMSD window and returns the rule on [0, duration−delta].
func tamsdRule(op string, duration, delta, timeStep float64, order int) (quadrature.Rule, error) {
	if err := checkHorizon(op, duration, timeStep); err != nil {
		return quadrature.Rule{}, err
	}
	if err := checkWindow(op, duration, delta); err != nil {
		return quadrature.Rule{}, err
	}
	rule, err := quadrature.NewGaussLegendre(order)
	if err != nil {
		return quadrature.Rule{}, fmt.Errorf("montecarlo: %s: %w: %w", op, ErrQuadrature, err)
	}
	rule, err = rule.Transform(0, duration-delta)
	if err != nil {
		return quadrature.Rule{}, fmt.Errorf("montecarlo: %s: %w: %w", op, ErrQuadrature, err)
	}

	return rule, nil
}

// tamsdNode draws one path on [0, t+delta] and returns w·(end − start)².
func (e *Engine) tamsdNode(op string, p process.Provider, rng *rand.Rand, sample int, t, w, delta, timeStep float64, lag int) (float64, error) {
	path, err := e.draw(op, p, rng, sample, t+delta, timeStep)
	if err != nil {
		return 0, err
	}
	last := path.Len() - 1
	if last-lag < 0 {
		return 0, invalidf(op, "path of %d points is shorter than lag %d", path.Len(), lag)
	}
	d := path.Positions[last] - path.Positions[last-lag]

	return w * d * d, nil
}
