package netspeed

import "time"

// minInterval is the floor for Config.MinMeasurementInterval. Below this the
// counter deltas are dominated by sampling noise.
const minInterval = 10 * time.Millisecond

// defaultWrapThreshold assumes any single-interval diff above 2^62 bytes is a
// counter reset or driver reload rather than real traffic.
const defaultWrapThreshold uint64 = 1 << 62

// Precision selects how a single Measure call derives a rate. The variant set
// is closed: Instant, Windowed, and Sampled are the only implementations.
type Precision interface {
	validate() error
	precision()
}

// Instant diffs against the previously stored snapshot. The first measurement
// has nothing to diff against and reports zero.
type Instant struct{}

func (Instant) validate() error { return nil }
func (Instant) precision()      {}

// Windowed takes two snapshots separated by a blocking sleep of Duration,
// trading latency for immunity to caller-call-rate jitter.
type Windowed struct {
	Duration time.Duration
}

func (w Windowed) validate() error {
	if w.Duration <= 0 {
		return &ConfigError{Field: "precision.windowed.duration must be > 0"}
	}
	return nil
}
func (Windowed) precision() {}

// Sampled averages Count independent windowed measurements of Interval each,
// smoothing short bursts at the cost of Count*Interval latency.
type Sampled struct {
	Count    int
	Interval time.Duration
}

func (s Sampled) validate() error {
	if s.Count < 2 {
		return &ConfigError{Field: "precision.sampled.count must be >= 2"}
	}
	if s.Interval <= 0 {
		return &ConfigError{Field: "precision.sampled.interval must be > 0"}
	}
	return nil
}
func (Sampled) precision() {}

// Config controls interface selection and rate computation. A Config must
// pass Validate before a Monitor adopts it; a Monitor never holds an invalid
// one.
type Config struct {
	ExcludeVirtual   bool
	ExcludeLoopback  bool
	ExcludeBluetooth bool

	// MinMeasurementInterval rejects measurements whose snapshots are closer
	// together than this. Rejection, not zero-clamping.
	MinMeasurementInterval time.Duration

	// MaxCounterWrapThreshold bounds the per-interval diff. Diffs above it are
	// treated as counter corruption, not wraparound.
	MaxCounterWrapThreshold uint64

	// InterfaceNameFilters excludes interfaces whose description contains any
	// entry (case-insensitive substring match).
	InterfaceNameFilters []string

	// InterfaceTypeFilters excludes interfaces by IANA ifType code.
	InterfaceTypeFilters []uint32

	// IncludeInterfaceIndices, when non-empty, is an allow-list of interface
	// indices.
	IncludeInterfaceIndices []uint32

	// IncludeInterfaceNamePatterns, when non-empty, is an allow-list of
	// case-insensitive description substrings.
	IncludeInterfaceNamePatterns []string

	Precision Precision
}

// DefaultConfig returns a Config that skips loopback, virtual, and bluetooth
// interfaces and measures instantaneously.
func DefaultConfig() Config {
	return Config{
		ExcludeVirtual:          true,
		ExcludeLoopback:         true,
		ExcludeBluetooth:        true,
		MinMeasurementInterval:  100 * time.Millisecond,
		MaxCounterWrapThreshold: defaultWrapThreshold,
		InterfaceTypeFilters:    []uint32{TypeLoopback},
		Precision:               Instant{},
	}
}

// Validate reports the first invalid field, if any.
func (c Config) Validate() error {
	if c.MinMeasurementInterval < minInterval {
		return &ConfigError{Field: "min_measurement_interval must be at least 10ms"}
	}
	if c.MaxCounterWrapThreshold == 0 {
		return &ConfigError{Field: "max_counter_wrap_threshold cannot be zero"}
	}
	if c.Precision == nil {
		return &ConfigError{Field: "precision must be set"}
	}
	return c.Precision.validate()
}

// WithPrecision returns a copy of c using the given precision mode.
func (c Config) WithPrecision(p Precision) Config {
	c.Precision = p
	return c
}

// WithMinInterval returns a copy of c using the given measurement floor.
func (c Config) WithMinInterval(d time.Duration) Config {
	c.MinMeasurementInterval = d
	return c
}

// WithNameFilter returns a copy of c that additionally excludes interfaces
// whose description contains filter.
func (c Config) WithNameFilter(filter string) Config {
	c.InterfaceNameFilters = append(append([]string(nil), c.InterfaceNameFilters...), filter)
	return c
}

// WithTypeFilter returns a copy of c that additionally excludes the given
// interface type code.
func (c Config) WithTypeFilter(ifType uint32) Config {
	c.InterfaceTypeFilters = append(append([]uint32(nil), c.InterfaceTypeFilters...), ifType)
	return c
}
