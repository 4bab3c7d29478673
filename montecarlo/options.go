// SPDX-License-Identifier: MIT

package montecarlo

import (
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/diffusionx/pool"
)

// Defaults mirrored by the zero configuration of New.
const (
	// DefaultParticles is the ensemble size suggested for interactive use.
	DefaultParticles = 10_000

	// DefaultQuadOrder is the TAMSD quadrature order suggested for interactive use.
	DefaultQuadOrder = 5

	// DefaultTimeStep is the discretization step suggested for interactive use.
	DefaultTimeStep = 0.01
)

const (
	panicNilPool     = "montecarlo: WithPool: pool must be non-nil"
	panicNilLogger   = "montecarlo: WithLogger: logger must be non-nil"
	panicNilObserver = "montecarlo: WithObserver: observer must be non-nil"
)

// Option configures an Engine.
type Option func(*Options)

// Options is the resolved Engine configuration.
type Options struct {
	pool     *pool.Pool
	seed     uint64
	seeded   bool
	logger   *slog.Logger
	observer Observer
}

// WithPool runs samples on p instead of pool.Default().
// Panics if p is nil.
func WithPool(p *pool.Pool) Option {
	if p == nil {
		panic(panicNilPool)
	}
	return func(o *Options) { o.pool = p }
}

// WithWorkers runs samples on a private pool of n slots (n ≤ 0 ⇒ GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(o *Options) { o.pool = pool.New(n) }
}

// WithSeed fixes the base seed. Engines built with the same seed return the
// same sequence of results for the same sequence of calls.
// Without it the seed is taken from the wall clock.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithLogger sets the structured logger. Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(o *Options) { o.logger = l }
}

// WithObserver installs a sampling observer (metrics). Panics if obs is nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic(panicNilObserver)
	}
	return func(o *Options) { o.observer = obs }
}

// gatherOptions applies opts on top of the defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pool == nil {
		o.pool = pool.Default()
	}
	if !o.seeded {
		o.seed = uint64(time.Now().UnixNano())
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.observer == nil {
		o.observer = NopObserver{}
	}

	return o
}
