// SPDX-License-Identifier: MIT

// Package scenario loads estimate scenarios from YAML.
//
// A scenario names one reference process and a list of statistics to
// estimate on it. Files are checked twice: against the embedded CUE schema
// (shape, kinds, ranges) and by a strict YAML decode that rejects unknown
// fields. Per-kind requirements (which fields a statistic needs) are
// checked in Go after decoding.
package scenario
