// SPDX-License-Identifier: MIT

// Package store persists estimate runs in SQLite.
//
// A run is one evaluation of a scenario: its name, the fingerprint of its
// canonical form, the engine seed and one result row per statistic, in
// scenario order. Run IDs are UUIDv7, so they sort by creation time.
package store
