// Package clock provides the time source used by every mutating operation,
// so that all span computations within one call share a single timestamp and
// tests can pin time deterministically.
package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock yields the current instant. All timestamps are UTC.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func NewSystemClock() Clock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Module wires the system clock for production apps.
var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
