// Package lifecycle holds shared limits for start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop step.
const DefaultTimeout = 10 * time.Second
