// Package cache stores registry lookup results with TTL eviction.
package cache

import "errors"

// ErrMiss is returned when no live entry exists for a license.
var ErrMiss = errors.New("registry cache miss")
