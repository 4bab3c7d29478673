// SPDX-License-Identifier: MIT

package montecarlo

import (
	"context"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/diffusionx/process"
)

// Summary describes the terminal values of one ensemble.
type Summary struct {
	Particles int
	Mean      float64
	StdDev    float64 // unbiased sample standard deviation
	StdErr    float64 // StdDev / √Particles
	Min, Max  float64
}

// ConfidenceHalfWidth returns z·StdErr, the half-width of the normal
// confidence interval around Mean for the quantile z (2.576 for 99%).
func (s Summary) ConfidenceHalfWidth(z float64) float64 { return z * s.StdErr }

// TerminalSummary draws particles paths and summarizes their terminal
// values in a single pass. particles must be at least 2.
func (e *Engine) TerminalSummary(ctx context.Context, p process.Provider, duration, timeStep float64, particles int) (Summary, error) {
	return observe(e, opSummary, ensembleAttrs(duration, timeStep, particles), func() (Summary, error) {
		if err := checkHorizon(opSummary, duration, timeStep); err != nil {
			return Summary{}, err
		}
		if particles < 2 {
			return Summary{}, invalidf(opSummary, "particles=%d must be ≥ 2", particles)
		}
		vals, err := e.pass(ctx, particles, func(_ context.Context, rng *rand.Rand, i int) (float64, error) {
			path, err := e.draw(opSummary, p, rng, i, duration, timeStep)
			if err != nil {
				return 0, err
			}
			return path.End(), nil
		})
		if err != nil {
			return Summary{}, err
		}

		mean, std := stat.MeanStdDev(vals, nil)
		s := Summary{
			Particles: particles,
			Mean:      mean,
			StdDev:    std,
			StdErr:    stat.StdErr(std, float64(particles)),
			Min:       floats.Min(vals),
			Max:       floats.Max(vals),
		}
		return s, nil
	})
}
