package netspeed

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Sample pairs one measurement result with its error, for channel delivery.
type Sample struct {
	Speed Speed
	Err   error
}

// AsyncMonitor exposes a Monitor behind a non-blocking interface. Every call
// funnels through one mutex, so overlapping calls never interleave snapshot
// capture and rate computation. Blocking measurements run on a worker
// goroutine; when the caller's context expires first, the worker is abandoned
// (the measurement still completes and releases the lock) and the caller gets
// an OpError.
//
// Cancellation of the continuous producer is by context. The source behavior
// stopped only when the receiving side disappeared, which Go channels cannot
// observe from the sending end.
type AsyncMonitor struct {
	mu      sync.Mutex
	monitor *Monitor
}

// NewAsyncMonitor wraps a default Monitor.
func NewAsyncMonitor() *AsyncMonitor {
	return NewAsyncMonitorWith(New())
}

// NewAsyncMonitorWith wraps an existing Monitor. The caller must not use the
// Monitor directly afterwards.
func NewAsyncMonitorWith(m *Monitor) *AsyncMonitor {
	return &AsyncMonitor{monitor: m}
}

// run executes fn under the monitor lock on a worker goroutine, abandoning it
// when ctx expires first.
func (a *AsyncMonitor) run(ctx context.Context, fn func(*Monitor) (Speed, error)) (Speed, error) {
	done := make(chan Sample, 1)
	go func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		speed, err := fn(a.monitor)
		done <- Sample{Speed: speed, Err: err}
	}()

	select {
	case r := <-done:
		return r.Speed, r.Err
	case <-ctx.Done():
		return Speed{}, &OpError{Reason: "measurement abandoned", Err: ctx.Err()}
	}
}

// Measure performs one measurement using the configured precision mode.
func (a *AsyncMonitor) Measure(ctx context.Context) (Speed, error) {
	return a.run(ctx, func(m *Monitor) (Speed, error) { return m.Measure() })
}

// MeasureWindow performs a one-off blocking windowed measurement.
func (a *AsyncMonitor) MeasureWindow(ctx context.Context, window time.Duration) (Speed, error) {
	return a.run(ctx, func(m *Monitor) (Speed, error) { return m.MeasureWindow(window) })
}

// InstantaneousSpeed returns the current reading, or ok=false when the
// monitor is not ready yet.
func (a *AsyncMonitor) InstantaneousSpeed(ctx context.Context) (Speed, bool, error) {
	var ready bool
	speed, err := a.run(ctx, func(m *Monitor) (Speed, error) {
		s, ok, err := m.InstantaneousSpeed()
		ready = ok
		return s, err
	})
	return speed, ready, err
}

// Reset clears the monitor's snapshot baseline.
func (a *AsyncMonitor) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.monitor.Reset()
}

// UpdateConfig validates and adopts a new configuration.
func (a *AsyncMonitor) UpdateConfig(cfg Config) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.monitor.UpdateConfig(cfg)
}

// Config returns the active configuration.
func (a *AsyncMonitor) Config() Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.monitor.Config()
}

// Interfaces returns the currently accepted interface descriptors.
func (a *AsyncMonitor) Interfaces(ctx context.Context) ([]Interface, error) {
	type result struct {
		ifaces []Interface
		err    error
	}
	done := make(chan result, 1)
	go func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		ifaces, err := a.monitor.Interfaces()
		done <- result{ifaces, err}
	}()
	select {
	case r := <-done:
		return r.ifaces, r.err
	case <-ctx.Done():
		return nil, &OpError{Reason: "enumeration abandoned", Err: ctx.Err()}
	}
}

// MonitorWithChannel starts one long-lived producer that measures on every
// tick and delivers results onto a bounded channel. Missed ticks are skipped,
// never bursted. The channel is closed when ctx is cancelled; successive
// samples from the producer are strictly time-ordered because each tick's
// measurement completes before the next begins.
func (a *AsyncMonitor) MonitorWithChannel(ctx context.Context, interval time.Duration, bufferSize int) <-chan Sample {
	ch := make(chan Sample, bufferSize)
	ticker := a.monitor.clock.Ticker(interval)

	go func() {
		defer close(ch)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			a.mu.Lock()
			speed, err := a.monitor.Measure()
			a.mu.Unlock()

			select {
			case ch <- Sample{Speed: speed, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// CollectSamples ticks sampleCount times, collecting successful measurements.
// Ticks rejected for insufficient elapsed time are skipped silently; any
// other failure aborts the collection. When every tick was skipped there is
// nothing to average, and an InsufficientTimeError is returned.
func (a *AsyncMonitor) CollectSamples(ctx context.Context, sampleCount int, interval time.Duration) ([]Speed, error) {
	if sampleCount <= 0 {
		return nil, &ConfigError{Field: "sample count must be > 0"}
	}

	ticker := a.monitor.clock.Ticker(interval)
	defer ticker.Stop()

	samples := make([]Speed, 0, sampleCount)
	for i := 0; i < sampleCount; i++ {
		select {
		case <-ctx.Done():
			return nil, &OpError{Reason: "sample collection abandoned", Err: ctx.Err()}
		case <-ticker.C:
		}

		a.mu.Lock()
		speed, err := a.monitor.Measure()
		a.mu.Unlock()
		if err != nil {
			var ite *InsufficientTimeError
			if errors.As(err, &ite) {
				continue
			}
			return nil, err
		}
		samples = append(samples, speed)
	}

	if len(samples) == 0 {
		return nil, &InsufficientTimeError{Min: interval, Actual: 0}
	}
	return samples, nil
}

// MeasureAverageSpeed samples every sampleInterval for totalDuration and
// returns the per-direction mean of the collected readings.
func (a *AsyncMonitor) MeasureAverageSpeed(ctx context.Context, totalDuration, sampleInterval time.Duration) (Speed, error) {
	if sampleInterval <= 0 {
		return Speed{}, &ConfigError{Field: "sample_interval must be > 0"}
	}
	sampleCount := int(totalDuration / sampleInterval)
	if sampleCount == 0 {
		return Speed{}, &ConfigError{Field: "measurement duration must be at least one sample interval"}
	}

	samples, err := a.CollectSamples(ctx, sampleCount, sampleInterval)
	if err != nil {
		return Speed{}, err
	}
	return averageSpeeds(samples, a.monitor.clock.Now()), nil
}

// averageSpeeds computes the independent integer mean of each direction.
// Already-derived rates are averaged directly rather than re-deriving a rate
// from byte diffs over the whole span.
func averageSpeeds(samples []Speed, now time.Time) Speed {
	var upSum, downSum uint64
	for _, s := range samples {
		upSum += s.UploadBytesPerSec
		downSum += s.DownloadBytesPerSec
	}
	n := uint64(len(samples))
	return Speed{
		UploadBytesPerSec:   upSum / n,
		DownloadBytesPerSec: downSum / n,
		Timestamp:           now,
	}
}

// AsyncTracker exposes a Tracker behind the same bridged interface. The
// engine and its history form one logical unit guarded by one lock.
type AsyncTracker struct {
	mu      sync.Mutex
	tracker *Tracker
}

// NewAsyncTracker wraps a default Tracker retaining up to maxHistory readings.
func NewAsyncTracker(maxHistory int) *AsyncTracker {
	return NewAsyncTrackerWith(NewTracker(maxHistory))
}

// NewAsyncTrackerWith wraps an existing Tracker. The caller must not use the
// Tracker directly afterwards.
func NewAsyncTrackerWith(t *Tracker) *AsyncTracker {
	return &AsyncTracker{tracker: t}
}

// Track measures once, records the result, and returns it.
func (a *AsyncTracker) Track(ctx context.Context) (Speed, error) {
	done := make(chan Sample, 1)
	go func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		speed, err := a.tracker.Track()
		done <- Sample{Speed: speed, Err: err}
	}()
	select {
	case r := <-done:
		return r.Speed, r.Err
	case <-ctx.Done():
		return Speed{}, &OpError{Reason: "tracking abandoned", Err: ctx.Err()}
	}
}

// History returns the recorded readings, oldest first.
func (a *AsyncTracker) History() []Speed {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tracker.History()
}

// Average returns the windowed mean, or ok=false when no readings qualify.
func (a *AsyncTracker) Average(window time.Duration) (Speed, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tracker.Average(window)
}

// Peak returns the windowed peak, or ok=false when no readings qualify.
func (a *AsyncTracker) Peak(window time.Duration) (Speed, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tracker.Peak(window)
}

// Clear empties the history.
func (a *AsyncTracker) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tracker.Clear()
}

// Reset clears both the history and the monitor baseline.
func (a *AsyncTracker) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tracker.Reset()
}

// UpdateConfig validates and adopts a new configuration on the wrapped
// monitor.
func (a *AsyncTracker) UpdateConfig(cfg Config) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tracker.Monitor().UpdateConfig(cfg)
}

// Config returns the active configuration.
func (a *AsyncTracker) Config() Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tracker.Monitor().Config()
}

// Interfaces returns the currently accepted interface descriptors from the
// wrapped monitor.
func (a *AsyncTracker) Interfaces(ctx context.Context) ([]Interface, error) {
	type result struct {
		ifaces []Interface
		err    error
	}
	done := make(chan result, 1)
	go func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		ifaces, err := a.tracker.Monitor().Interfaces()
		done <- result{ifaces, err}
	}()
	select {
	case r := <-done:
		return r.ifaces, r.err
	case <-ctx.Done():
		return nil, &OpError{Reason: "enumeration abandoned", Err: ctx.Err()}
	}
}

// StartTracking starts a producer that tracks on every tick, recording each
// successful reading in the history and delivering every result onto the
// returned channel. The channel is closed when ctx is cancelled.
func (a *AsyncTracker) StartTracking(ctx context.Context, interval time.Duration, bufferSize int) <-chan Sample {
	ch := make(chan Sample, bufferSize)
	ticker := a.tracker.Monitor().clock.Ticker(interval)

	go func() {
		defer close(ch)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			a.mu.Lock()
			speed, err := a.tracker.Track()
			a.mu.Unlock()

			select {
			case ch <- Sample{Speed: speed, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
