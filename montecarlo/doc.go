// SPDX-License-Identifier: MIT

// Package montecarlo estimates ensemble statistics of stochastic processes by
// repeated, independent sampling of a process.Provider.
//
// 🚀 What does it compute?
//
//	Terminal-value statistics over `particles` independent paths on [0, T]:
//	  • Mean, MSD (X_T − X_0)²
//	  • RawMoment / CentralMoment of integer order
//	  • FracRawMoment / FracCentralMoment of real order
//	Time-averaged statistics by Gauss–Legendre quadrature:
//	  • TAMSD   — (1/(T−Δ)) ∫₀^{T−Δ} (X(t+Δ) − X(t))² dt
//	  • EATAMSD — the ensemble average of TAMSD
//	Domain statistics:
//	  • FPT (first exit from an open interval) and its moments
//	  • OccupationTime (time spent in a closed interval) and its moments
//
// ⚙️ Usage:
//
//	bm, _ := process.NewBm(0, 1)
//	eng := montecarlo.New(montecarlo.WithSeed(42))
//	msd, err := eng.MSD(ctx, bm, 100, 0.01, 100_000) // ≈ 2·D·T = 200
//
// Sampling model:
//   - Every sample is an independent provider call with its own random stream,
//     derived from the engine seed, the call number and the sample index.
//     A fresh Engine with the same seed replays the same results bit for bit.
//   - Samples run on a shared pool.Pool; contributions are reduced in index
//     order, so scheduling never changes the result.
//   - Central moments use two independent passes: one to estimate the mean,
//     one to average (x − mean)ⁿ.
//   - Each TAMSD quadrature node draws its own path of length node+Δ, so
//     TAMSD is a Monte Carlo estimate of an expectation, not an integral over
//     a single realization.
//
// Errors:
//   - ErrInvalidParameter — rejected before any sampling.
//   - ErrQuadrature       — the quadrature order cannot build a rule.
//   - ErrProvider         — a sample failed; the whole call is aborted and the
//     *ProviderError names the failing sample.
package montecarlo
