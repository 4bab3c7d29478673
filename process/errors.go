// SPDX-License-Identifier: MIT

package process

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned by constructors and Simulate when a
	// process parameter, duration or time step is out of its domain.
	ErrInvalidParameter = errors.New("process: invalid parameter")

	// ErrMalformedPath indicates a Path that violates the documented invariants.
	ErrMalformedPath = errors.New("process: malformed path")

	// ErrNonFinite indicates a NaN or ±Inf produced while stepping a path
	// (typically by a user supplied drift or diffusion callback).
	ErrNonFinite = errors.New("process: non-finite value")
)

// processErrorf prefixes err with the operation tag, keeping errors.Is intact.
func processErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
