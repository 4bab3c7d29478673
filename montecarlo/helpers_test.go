// SPDX-License-Identifier: MIT

package montecarlo_test

import (
	"math"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/diffusionx/montecarlo"
	"github.com/katalvlaran/diffusionx/pool"
	"github.com/katalvlaran/diffusionx/process"
)

// newEngine returns a seeded engine on a private pool.
func newEngine(seed uint64, opts ...montecarlo.Option) *montecarlo.Engine {
	return montecarlo.New(append([]montecarlo.Option{montecarlo.WithSeed(seed), montecarlo.WithPool(pool.New(4))}, opts...)...)
}

func brownian(d float64) process.Bm {
	bm, err := process.NewBm(0, d)
	if err != nil {
		panic(err)
	}
	return bm
}

// linear is the deterministic provider x(t) = start + slope·t.
func linear(start, slope float64) process.Provider {
	return process.ProviderFunc(func(_ *rand.Rand, duration, timeStep float64) (process.Path, error) {
		times, err := process.TimeGrid(duration, timeStep)
		if err != nil {
			return process.Path{}, err
		}
		pos := make([]float64, len(times))
		for i, t := range times {
			pos[i] = start + slope*t
		}
		return process.Path{Times: times, Positions: pos}, nil
	})
}

// stdErrBound is a 4σ bound for the mean of n draws of variance v.
func stdErrBound(v float64, n int) float64 { return 4 * math.Sqrt(v/float64(n)) }

type mockProvider struct{ mock.Mock }

func (m *mockProvider) Simulate(_ *rand.Rand, duration, timeStep float64) (process.Path, error) {
	args := m.Called(duration, timeStep)
	return args.Get(0).(process.Path), args.Error(1)
}

type recordingObserver struct {
	mu        sync.Mutex
	samples   int
	failures  int
	estimates []string
}

func (r *recordingObserver) ObserveSample(_ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples++
	if err != nil {
		r.failures++
	}
}

func (r *recordingObserver) ObserveEstimate(op string, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.estimates = append(r.estimates, op)
}
