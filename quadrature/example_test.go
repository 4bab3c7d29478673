// SPDX-License-Identifier: MIT

package quadrature_test

import (
	"fmt"

	"github.com/katalvlaran/diffusionx/quadrature"
)

// ExampleRule_Transform integrates t² over [0, 3] with a 3-point rule,
// which is exact for polynomials up to degree 5.
func ExampleRule_Transform() {
	base, err := quadrature.NewGaussLegendre(3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	r, err := base.Transform(0, 3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%.6f\n", r.Integrate(func(t float64) float64 { return t * t }))
	// Output:
	// 9.000000
}
