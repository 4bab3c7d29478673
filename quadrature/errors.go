// SPDX-License-Identifier: MIT

package quadrature

import "errors"

var (
	// ErrInvalidOrder is returned when a rule with fewer than MinOrder points is requested.
	ErrInvalidOrder = errors.New("quadrature: invalid rule order")

	// ErrInvalidInterval is returned by Transform unless a < b and both are finite.
	ErrInvalidInterval = errors.New("quadrature: invalid interval")
)
