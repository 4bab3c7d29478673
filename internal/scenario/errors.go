// SPDX-License-Identifier: MIT

package scenario

import "errors"

var (
	// ErrInvalid marks a scenario that fails schema or per-kind validation.
	ErrInvalid = errors.New("scenario: invalid")

	// ErrUnknownKind marks an unsupported process or statistic kind.
	ErrUnknownKind = errors.New("scenario: unknown kind")
)
