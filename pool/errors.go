// SPDX-License-Identifier: MIT

package pool

import "errors"

// ErrNegativeCount is returned by Map when asked for a negative number of tasks.
var ErrNegativeCount = errors.New("pool: negative task count")
