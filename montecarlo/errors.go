// SPDX-License-Identifier: MIT

package montecarlo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks caller input rejected before sampling.
	ErrInvalidParameter = errors.New("montecarlo: invalid parameter")

	// ErrQuadrature marks a quadrature order that cannot build a rule.
	// The wrapped quadrature.ErrInvalidOrder is matchable as well.
	ErrQuadrature = errors.New("montecarlo: quadrature construction failed")

	// ErrProvider marks a failed provider invocation. Use errors.As with
	// *ProviderError to reach the sample index and the provider's error.
	ErrProvider = errors.New("montecarlo: provider failed")
)

// errNoPassage aborts an FPT ensemble as soon as one path never exits.
var errNoPassage = errors.New("montecarlo: no passage within max duration")

// ProviderError reports the first failing sample of an estimate.
type ProviderError struct {
	Op     string // engine operation, e.g. "central_moment"
	Sample int    // sample index within the failing pass
	Err    error  // error returned by the provider or by path validation
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("montecarlo: %s: sample %d: provider failed: %v", e.Op, e.Sample, e.Err)
}

// Unwrap exposes the provider's own error.
func (e *ProviderError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrProvider) hold for every *ProviderError.
func (e *ProviderError) Is(target error) bool { return target == ErrProvider }

// invalidf builds an ErrInvalidParameter error tagged with op.
func invalidf(op, format string, args ...any) error {
	return fmt.Errorf("montecarlo: %s: %w: %s", op, ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func isProviderFailure(err error) bool { return errors.Is(err, ErrProvider) }
