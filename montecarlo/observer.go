// SPDX-License-Identifier: MIT

package montecarlo

import "time"

// Observer receives sampling events. Implementations must be safe for
// concurrent use; ObserveSample is called from pool workers.
type Observer interface {
	// ObserveSample is called once per provider invocation; err is nil on success.
	ObserveSample(op string, err error)

	// ObserveEstimate is called once per public operation when it returns.
	ObserveEstimate(op string, elapsed time.Duration, err error)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) ObserveSample(string, error)                  {}
func (NopObserver) ObserveEstimate(string, time.Duration, error) {}
