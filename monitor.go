package netspeed

import (
	"errors"
	"math/bits"
	"time"

	"github.com/benbjohnson/clock"
)

// Monitor is the measurement engine. It owns the previous-snapshot state,
// drives the interface directory, and derives throughput according to the
// configured precision mode.
//
// A Monitor is not safe for concurrent use; wrap it in an AsyncMonitor to
// share it across goroutines.
type Monitor struct {
	config Config
	dir    *Directory
	prev   *Snapshot
	clock  clock.Clock
}

// New creates a Monitor with the default config over the default enumeration
// source chain.
func New() *Monitor {
	m, _ := NewMonitor(DefaultConfig(), DefaultSource())
	return m
}

// NewMonitor creates a Monitor with an explicit config and enumeration
// source. The config is validated before adoption.
func NewMonitor(cfg Config, src Source) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Monitor{
		config: cfg,
		dir:    NewDirectory(cfg, src),
		clock:  clock.New(),
	}, nil
}

// Measure derives one throughput reading using the configured precision mode.
// Windowed and Sampled modes block the calling goroutine for the duration of
// the window(s).
func (m *Monitor) Measure() (Speed, error) {
	switch p := m.config.Precision.(type) {
	case Instant:
		return m.measureInstant()
	case Windowed:
		return m.measureWindow(p.Duration)
	case Sampled:
		return m.measureSampled(p.Count, p.Interval)
	default:
		return Speed{}, &ConfigError{Field: "precision mode unknown"}
	}
}

// MeasureWindow takes a one-off blocking two-point measurement over the given
// window, regardless of the configured precision mode.
func (m *Monitor) MeasureWindow(window time.Duration) (Speed, error) {
	if window <= 0 {
		return Speed{}, &ConfigError{Field: "measurement window must be > 0"}
	}
	return m.measureWindow(window)
}

// InstantaneousSpeed returns the current reading, or ok=false when the
// monitor has no baseline yet or too little time has elapsed since it was
// taken. Both are "not ready", distinct from a reportable fault.
func (m *Monitor) InstantaneousSpeed() (Speed, bool, error) {
	if m.prev == nil {
		return Speed{}, false, nil
	}
	speed, err := m.Measure()
	if err != nil {
		var ite *InsufficientTimeError
		if errors.As(err, &ite) {
			return Speed{}, false, nil
		}
		return Speed{}, false, err
	}
	return speed, true, nil
}

// Reset clears the previous snapshot. Config and directory are untouched; the
// next instant measurement is a cold start.
func (m *Monitor) Reset() {
	m.prev = nil
}

// Config returns the active configuration.
func (m *Monitor) Config() Config {
	return m.config
}

// UpdateConfig validates and adopts a new configuration, rebuilds the
// directory against the new filter set, and clears the previous snapshot: a
// snapshot taken under the old filters aggregates a different interface set
// and is not comparable.
func (m *Monitor) UpdateConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.config = cfg
	m.dir = NewDirectory(cfg, m.dir.source)
	m.Reset()
	return nil
}

// Interfaces returns the currently accepted interface descriptors.
func (m *Monitor) Interfaces() ([]Interface, error) {
	return m.dir.Accepted()
}

// ListAllInterfaces enumerates every interface the source reports, ignoring
// the filter rules.
func (m *Monitor) ListAllInterfaces() ([]Interface, error) {
	return m.dir.source.Enumerate()
}

// RefreshInterfaces re-enumerates and rebuilds the directory cache.
func (m *Monitor) RefreshInterfaces() error {
	return m.dir.Refresh()
}

func (m *Monitor) snapshot() (Snapshot, error) {
	sent, recv, err := m.dir.TotalTraffic()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{BytesSent: sent, BytesRecv: recv, Timestamp: m.clock.Now()}, nil
}

func (m *Monitor) measureInstant() (Speed, error) {
	curr, err := m.snapshot()
	if err != nil {
		return Speed{}, err
	}

	prev := m.prev
	m.prev = &curr

	if prev == nil {
		// Cold start: nothing to diff against.
		return Speed{Timestamp: curr.Timestamp}, nil
	}
	return ComputeSpeed(curr, *prev, m.config.MinMeasurementInterval, m.config.MaxCounterWrapThreshold)
}

func (m *Monitor) measureWindow(window time.Duration) (Speed, error) {
	first, err := m.snapshot()
	if err != nil {
		return Speed{}, err
	}

	m.clock.Sleep(window)

	last, err := m.snapshot()
	if err != nil {
		return Speed{}, err
	}
	m.prev = &last

	return ComputeSpeed(last, first, m.config.MinMeasurementInterval, m.config.MaxCounterWrapThreshold)
}

func (m *Monitor) measureSampled(count int, interval time.Duration) (Speed, error) {
	// 128-bit accumulation so pathological rates cannot overflow the sum.
	var upHi, upLo, downHi, downLo uint64
	var carry uint64

	for i := 0; i < count; i++ {
		speed, err := m.measureWindow(interval)
		if err != nil {
			return Speed{}, err
		}
		upLo, carry = bits.Add64(upLo, speed.UploadBytesPerSec, 0)
		upHi += carry
		downLo, carry = bits.Add64(downLo, speed.DownloadBytesPerSec, 0)
		downHi += carry
	}

	// upHi/downHi are bounded by count-1, so the division cannot trap.
	avgUp, _ := bits.Div64(upHi, upLo, uint64(count))
	avgDown, _ := bits.Div64(downHi, downLo, uint64(count))

	return Speed{
		UploadBytesPerSec:   avgUp,
		DownloadBytesPerSec: avgDown,
		Timestamp:           m.clock.Now(),
	}, nil
}
