package netspeed

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoInterfaces indicates that the configured filter set matched no
// interfaces. This is a hard stop rather than a zero-speed result: an empty
// accepted set almost always means a misconfigured filter, not an idle host.
var ErrNoInterfaces = errors.New("no network interfaces found")

// ErrCalculationOverflow indicates that a counter diff exceeded the configured
// wrap threshold and the sample was discarded as corrupt.
var ErrCalculationOverflow = errors.New("counter diff exceeds wrap threshold")

// InsufficientTimeError is returned when two snapshots are closer together
// than the configured minimum measurement interval.
type InsufficientTimeError struct {
	Min    time.Duration
	Actual time.Duration
}

func (e *InsufficientTimeError) Error() string {
	return fmt.Sprintf("insufficient time elapsed for measurement (minimum %v, actual %v)", e.Min, e.Actual)
}

// ConfigError is returned when a Config fails validation. It never reaches a
// running Monitor: invalid configs are rejected before adoption.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Field
}

// OpError reports a coordination fault in the concurrency bridge, such as an
// abandoned worker call.
type OpError struct {
	Reason string
	Err    error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("interface operation failed: %s: %v", e.Reason, e.Err)
	}
	return "interface operation failed: " + e.Reason
}

func (e *OpError) Unwrap() error { return e.Err }

// Recoverable reports whether err describes a transient measurement condition
// that is safe to retry on the next tick.
func Recoverable(err error) bool {
	var ite *InsufficientTimeError
	return errors.As(err, &ite) || errors.Is(err, ErrCalculationOverflow)
}
