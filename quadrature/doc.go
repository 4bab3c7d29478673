// SPDX-License-Identifier: MIT

// Package quadrature builds Gauss–Legendre rules and maps them onto arbitrary
// intervals.
//
// An n-point rule on [-1, 1] integrates polynomials of degree ≤ 2n−1 exactly.
// Transform(a, b) applies the affine change of variables
//
//	node'   = (b−a)/2 · node + (b+a)/2
//	weight' = (b−a)/2 · weight
//
// so Σ weight'·f(node') ≈ ∫ₐᵇ f(t) dt.
//
// Nodes and weights come from gonum's integrate/quad Legendre generator.
// Rules are immutable values; share them freely across goroutines.
package quadrature
