// SPDX-License-Identifier: MIT

package quadrature_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/diffusionx/quadrature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGaussLegendre_InvalidOrder(t *testing.T) {
	t.Parallel()

	for _, order := range []int{-3, 0, 1} {
		_, err := quadrature.NewGaussLegendre(order)
		assert.ErrorIs(t, err, quadrature.ErrInvalidOrder, "order=%d", order)
	}
}

func TestNewGaussLegendre_TwoPointRule(t *testing.T) {
	t.Parallel()

	r, err := quadrature.NewGaussLegendre(2)
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
	assert.InDelta(t, -1/math.Sqrt(3), r.Nodes[0], 1e-14)
	assert.InDelta(t, 1/math.Sqrt(3), r.Nodes[1], 1e-14)
	assert.InDelta(t, 1.0, r.Weights[0], 1e-14)
	assert.InDelta(t, 1.0, r.Weights[1], 1e-14)
}

func TestRule_NodesAscendingInsideInterval(t *testing.T) {
	t.Parallel()

	r, err := quadrature.NewGaussLegendre(20)
	require.NoError(t, err)
	for i, x := range r.Nodes {
		assert.Greater(t, x, -1.0)
		assert.Less(t, x, 1.0)
		if i > 0 {
			assert.Greater(t, x, r.Nodes[i-1])
		}
	}
}

func TestRule_TransformIntegratesConstant(t *testing.T) {
	t.Parallel()

	intervals := [][2]float64{{0, 1}, {-3, 7}, {0, 9}, {1e-3, 2e-3}, {-100, -99.5}}
	for _, order := range []int{2, 5, 20, 64} {
		base, err := quadrature.NewGaussLegendre(order)
		require.NoError(t, err)
		for _, iv := range intervals {
			r, err := base.Transform(iv[0], iv[1])
			require.NoError(t, err)
			got := r.Integrate(func(float64) float64 { return 1 })
			want := iv[1] - iv[0]
			assert.InDelta(t, want, got, 1e-12*math.Max(1, math.Abs(want)),
				"order=%d interval=%v", order, iv)
		}
	}
}

func TestRule_PolynomialExactness(t *testing.T) {
	t.Parallel()

	// A 5-point rule is exact through degree 9: ∫₀² t⁹ dt = 2¹⁰/10.
	base, err := quadrature.NewGaussLegendre(5)
	require.NoError(t, err)
	r, err := base.Transform(0, 2)
	require.NoError(t, err)
	got := r.Integrate(func(t float64) float64 { return math.Pow(t, 9) })
	assert.InDelta(t, 102.4, got, 1e-10)
}

func TestRule_TransformRejectsBadInterval(t *testing.T) {
	t.Parallel()

	r, err := quadrature.NewGaussLegendre(3)
	require.NoError(t, err)
	for _, iv := range [][2]float64{{1, 1}, {2, 1}, {math.NaN(), 1}, {0, math.Inf(1)}} {
		_, err := r.Transform(iv[0], iv[1])
		assert.ErrorIs(t, err, quadrature.ErrInvalidInterval, "interval=%v", iv)
	}
}

func TestRule_TransformDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	r, err := quadrature.NewGaussLegendre(4)
	require.NoError(t, err)
	before := append([]float64(nil), r.Nodes...)
	_, err = r.Transform(10, 20)
	require.NoError(t, err)
	assert.Equal(t, before, r.Nodes)
}
