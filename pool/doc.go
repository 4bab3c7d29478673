// SPDX-License-Identifier: MIT

// Package pool provides the bounded worker pool behind the Monte Carlo engine.
//
// A Pool owns a fixed number of worker slots. Map fans an index range out over
// those slots, stores every result at its own index and fails fast: the first
// error cancels the remaining work and is returned to the caller. Many callers
// may share one Pool; they compete for the same slots.
//
// Default returns a process-wide Pool sized to GOMAXPROCS, created once on
// first use. Prefer injecting an explicit Pool where you can.
//
// Tasks running on a Pool must not call Map on the same Pool: with every slot
// held by an outer task the inner call could never acquire one.
package pool
