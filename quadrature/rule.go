// SPDX-License-Identifier: MIT

package quadrature

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
)

// MinOrder is the smallest supported rule order.
const MinOrder = 2

// Rule is an ordered set of quadrature nodes with matching weights.
type Rule struct {
	Nodes   []float64
	Weights []float64
}

// NewGaussLegendre returns the order-point Gauss–Legendre rule on [-1, 1],
// nodes in ascending order.
//
// Errors:
//   - ErrInvalidOrder if order < MinOrder.
//
// Complexity:
//   - Time O(order²) for the Newton iterations on Pₙ, Space O(order).
func NewGaussLegendre(order int) (Rule, error) {
	if order < MinOrder {
		return Rule{}, fmt.Errorf("%w: order=%d, want ≥ %d", ErrInvalidOrder, order, MinOrder)
	}
	nodes := make([]float64, order)
	weights := make([]float64, order)
	quad.Legendre{}.FixedLocations(nodes, weights, -1, 1)

	r := Rule{Nodes: nodes, Weights: weights}
	sort.Sort(byNode(r))

	return r, nil
}

// Len returns the number of points.
func (r Rule) Len() int { return len(r.Nodes) }

// Transform maps the rule from [-1, 1] onto [a, b]. The receiver is not modified.
//
// Errors:
//   - ErrInvalidInterval unless a < b and both are finite.
//
// Complexity:
//   - Time O(r.Len()), Space O(r.Len()).
func (r Rule) Transform(a, b float64) (Rule, error) {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) || !(a < b) {
		return Rule{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidInterval, a, b)
	}
	half := (b - a) / 2
	mid := (b + a) / 2
	out := Rule{
		Nodes:   make([]float64, len(r.Nodes)),
		Weights: make([]float64, len(r.Weights)),
	}
	for i := range r.Nodes {
		out.Nodes[i] = half*r.Nodes[i] + mid
		out.Weights[i] = half * r.Weights[i]
	}

	return out, nil
}

// Integrate returns Σ wᵢ·f(xᵢ), evaluated in node order.
//
// Complexity: r.Len() calls of f.
func (r Rule) Integrate(f func(float64) float64) float64 {
	var sum float64
	for i, x := range r.Nodes {
		sum += r.Weights[i] * f(x)
	}
	return sum
}

// byNode sorts a rule by node while keeping weights attached.
type byNode Rule

func (s byNode) Len() int           { return len(s.Nodes) }
func (s byNode) Less(i, j int) bool { return s.Nodes[i] < s.Nodes[j] }
func (s byNode) Swap(i, j int) {
	s.Nodes[i], s.Nodes[j] = s.Nodes[j], s.Nodes[i]
	s.Weights[i], s.Weights[j] = s.Weights[j], s.Weights[i]
}
