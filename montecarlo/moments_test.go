// SPDX-License-Identifier: MIT

package montecarlo_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diffusionx/montecarlo"
	"github.com/katalvlaran/diffusionx/pool"
	"github.com/katalvlaran/diffusionx/process"
)

func TestMean_BrownianMotionStaysAtStart(t *testing.T) {
	t.Parallel()

	const n = 20_000
	mean, err := newEngine(1).Mean(context.Background(), brownian(1), 1, 0.01, n)
	require.NoError(t, err)
	assert.InDelta(t, 0, mean, stdErrBound(2, n))
}

func TestMSD_BrownianMotionIsTwoDT(t *testing.T) {
	t.Parallel()

	const n = 20_000
	msd, err := newEngine(2).MSD(context.Background(), brownian(0.5), 2, 0.01, n)
	require.NoError(t, err)
	// X_T ~ N(0, 2DT) with 2DT = 2, so Var[X_T²] = 2·2².
	assert.InDelta(t, 2, msd, stdErrBound(8, n))
}

func TestMeanMSD_LongHorizon(t *testing.T) {
	if testing.Short() {
		t.Skip("10⁹ Gaussian draws")
	}
	t.Parallel()

	const (
		duration = 100.0
		n        = 100_000
	)
	eng := newEngine(42, montecarlo.WithPool(pool.New(0)))
	bm := brownian(1)

	mean, err := eng.Mean(context.Background(), bm, duration, 0.01, n)
	require.NoError(t, err)
	assert.InDelta(t, 0, mean, stdErrBound(2*duration, n))

	msd, err := eng.MSD(context.Background(), bm, duration, 0.01, n)
	require.NoError(t, err)
	assert.InDelta(t, 2*duration, msd, stdErrBound(2*4*duration*duration, n))
}

func TestRawMoment_FirstOrderEqualsMean(t *testing.T) {
	t.Parallel()

	bm := brownian(1)
	mean, err := newEngine(5).Mean(context.Background(), bm, 1, 0.05, 500)
	require.NoError(t, err)
	raw, err := newEngine(5).RawMoment(context.Background(), bm, 1, 1, 0.05, 500)
	require.NoError(t, err)
	assert.Equal(t, mean, raw, "same seed, same draws, same reduction")
}

func TestRawMoment_ZeroOrderIsOne(t *testing.T) {
	t.Parallel()

	v, err := newEngine(1).RawMoment(context.Background(), brownian(1), 0, 1, 0.1, 100)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestRawMoment_NegativeOrderPropagatesInf(t *testing.T) {
	t.Parallel()

	v, err := newEngine(1).RawMoment(context.Background(), brownian(0), -1, 1, 0.1, 10)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

func TestCentralMoment(t *testing.T) {
	t.Parallel()

	const n = 20_000
	eng := newEngine(9)
	bm := brownian(1)

	first, err := eng.CentralMoment(context.Background(), bm, 1, 1, 0.01, n)
	require.NoError(t, err)
	// Difference of two independent means of variance 2.
	assert.InDelta(t, 0, first, stdErrBound(4, n))

	second, err := eng.CentralMoment(context.Background(), bm, 2, 1, 0.01, n)
	require.NoError(t, err)
	assert.InDelta(t, 2, second, stdErrBound(8, n)+0.01)
}

func TestCentralMoment_DrawsTwoBatches(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	_, err := newEngine(1, montecarlo.WithObserver(obs)).CentralMoment(context.Background(), brownian(1), 2, 1, 0.1, 64)
	require.NoError(t, err)
	assert.Equal(t, 128, obs.samples)
	assert.Equal(t, []string{"central_moment"}, obs.estimates)
}

func TestFracMoments_Deterministic(t *testing.T) {
	t.Parallel()

	constant := linear(10, 0)
	eng := newEngine(1)

	raw, err := eng.FracRawMoment(context.Background(), constant, 0.5, 1, 0.1, 16)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(10), raw, 1e-12)

	central, err := eng.FracCentralMoment(context.Background(), constant, 1.5, 1, 0.1, 16)
	require.NoError(t, err)
	assert.Equal(t, 0.0, central)
}

func TestFracRawMoment_NegativeBaseIsNaN(t *testing.T) {
	t.Parallel()

	v, err := newEngine(1).FracRawMoment(context.Background(), linear(-1, 0), 0.5, 1, 0.1, 4)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))
}

func TestFracRawMoment_MatchesIntegerOrder(t *testing.T) {
	t.Parallel()

	bm := brownian(1)
	frac, err := newEngine(3).FracRawMoment(context.Background(), bm, 2, 1, 0.05, 1000)
	require.NoError(t, err)
	raw, err := newEngine(3).RawMoment(context.Background(), bm, 2, 1, 0.05, 1000)
	require.NoError(t, err)
	assert.InEpsilon(t, raw, frac, 1e-12)
}

func TestMoments_InvalidParameters(t *testing.T) {
	t.Parallel()

	eng := newEngine(1)
	bm := brownian(1)
	ctx := context.Background()
	cases := []struct {
		name     string
		duration float64
		step     float64
		n        int
	}{
		{"zero particles", 1, 0.1, 0},
		{"negative particles", 1, 0.1, -3},
		{"zero duration", 0, 0.1, 10},
		{"negative step", 1, -0.1, 10},
		{"NaN step", 1, math.NaN(), 10},
		{"infinite duration", math.Inf(1), 0.1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eng.Mean(ctx, bm, tc.duration, tc.step, tc.n)
			assert.ErrorIs(t, err, montecarlo.ErrInvalidParameter)
			_, err = eng.MSD(ctx, bm, tc.duration, tc.step, tc.n)
			assert.ErrorIs(t, err, montecarlo.ErrInvalidParameter)
			_, err = eng.RawMoment(ctx, bm, 2, tc.duration, tc.step, tc.n)
			assert.ErrorIs(t, err, montecarlo.ErrInvalidParameter)
			_, err = eng.CentralMoment(ctx, bm, 2, tc.duration, tc.step, tc.n)
			assert.ErrorIs(t, err, montecarlo.ErrInvalidParameter)
			_, err = eng.FracRawMoment(ctx, bm, 0.5, tc.duration, tc.step, tc.n)
			assert.ErrorIs(t, err, montecarlo.ErrInvalidParameter)
			_, err = eng.FracCentralMoment(ctx, bm, 0.5, tc.duration, tc.step, tc.n)
			assert.ErrorIs(t, err, montecarlo.ErrInvalidParameter)
		})
	}

	_, err := eng.FracRawMoment(ctx, bm, math.NaN(), 1, 0.1, 10)
	assert.ErrorIs(t, err, montecarlo.ErrInvalidParameter)
}

func TestTerminalSummary(t *testing.T) {
	t.Parallel()

	const n = 5000
	s, err := newEngine(11).TerminalSummary(context.Background(), brownian(1), 1, 0.02, n)
	require.NoError(t, err)
	assert.Equal(t, n, s.Particles)
	assert.InDelta(t, 0, s.Mean, stdErrBound(2, n))
	assert.InDelta(t, math.Sqrt2, s.StdDev, 0.08)
	assert.InDelta(t, s.StdDev/math.Sqrt(n), s.StdErr, 1e-12)
	assert.LessOrEqual(t, s.Min, s.Mean)
	assert.GreaterOrEqual(t, s.Max, s.Mean)
	assert.InDelta(t, 2.576*s.StdErr, s.ConfidenceHalfWidth(2.576), 1e-15)

	_, err = newEngine(1).TerminalSummary(context.Background(), brownian(1), 1, 0.02, 1)
	assert.ErrorIs(t, err, montecarlo.ErrInvalidParameter)
}

func TestTerminalSummary_ConstantProcess(t *testing.T) {
	t.Parallel()

	bm, err := process.NewBm(4, 0)
	require.NoError(t, err)
	s, err := newEngine(1).TerminalSummary(context.Background(), bm, 1, 0.25, 8)
	require.NoError(t, err)
	assert.Equal(t, montecarlo.Summary{Particles: 8, Mean: 4, Min: 4, Max: 4}, s)
}
