// SPDX-License-Identifier: MIT

// Package diffusionx is a Monte Carlo statistic engine for one-dimensional
// stochastic processes.
//
// 🚀 What is diffusionx?
//
//	A process is anything that can draw one independent path of itself
//	over [0, T] at a time step dt (process.Provider). The engine draws many
//	such paths in parallel and reduces them to ensemble statistics:
//		• Mean, MSD, raw / central moments (integer and real order)
//		• TAMSD and EATAMSD by Gauss–Legendre quadrature
//		• First-passage and occupation times with their moments
//
// ✨ Guarantees:
//
//   - Reproducible – a seeded engine replays results bit for bit,
//     whatever the number of workers
//   - Fail-fast – the first failing sample aborts the whole estimate
//   - Honest – invalid input is rejected before sampling, a missing first
//     passage is reported instead of averaged away
//
// Layout:
//
//	process/    — Provider contract, Path invariants, reference processes (BM, OU, GBM, Langevin)
//	quadrature/ — Gauss–Legendre rules and their affine transform
//	pool/       — shared, bounded, fail-fast worker pool
//	montecarlo/ — the statistic engine
//	internal/   — scenario files, SQLite result store, Prometheus metrics, CLI
//	cmd/        — the diffusionx binary
//	examples/   — runnable demos
//
// Quick example:
//
//	bm, _ := process.NewBm(0, 1)
//	eng := montecarlo.New(montecarlo.WithSeed(42))
//	msd, _ := eng.MSD(ctx, bm, 100, 0.01, 100_000) // ≈ 200
//
// Command line:
//
//	diffusionx simulate --process ou --param theta=2 --duration 5
//	diffusionx estimate --db results.db scenarios/bm.yaml
//	diffusionx history --db results.db
package diffusionx
