package netspeed

import "time"

// Tracker wraps a Monitor and retains every successful measurement in a
// bounded, time-ordered history for windowed average/peak queries.
type Tracker struct {
	monitor *Monitor
	history *ringBuffer[Speed]
}

// NewTracker creates a Tracker over a default Monitor, retaining up to
// maxHistory readings.
func NewTracker(maxHistory int) *Tracker {
	return NewTrackerWith(New(), maxHistory)
}

// NewTrackerWith creates a Tracker over an existing Monitor.
func NewTrackerWith(m *Monitor, maxHistory int) *Tracker {
	return &Tracker{
		monitor: m,
		history: newRingBuffer[Speed](maxHistory),
	}
}

// Monitor returns the wrapped measurement engine.
func (t *Tracker) Monitor() *Monitor {
	return t.monitor
}

// Track measures once and records the result. Failed measurements are not
// recorded and propagate unchanged.
func (t *Tracker) Track() (Speed, error) {
	speed, err := t.monitor.Measure()
	if err != nil {
		return Speed{}, err
	}
	t.history.add(speed)
	return speed, nil
}

// History returns the recorded readings, oldest first.
func (t *Tracker) History() []Speed {
	return t.history.all()
}

// Average returns the per-direction mean of readings recorded within the
// window, or ok=false when none qualify. Samples are weighted equally, not by
// the time they cover.
func (t *Tracker) Average(window time.Duration) (Speed, bool) {
	cutoff := t.monitor.clock.Now().Add(-window)

	var upSum, downSum, n uint64
	for _, s := range t.history.all() {
		if s.Timestamp.Before(cutoff) {
			continue
		}
		upSum += s.UploadBytesPerSec
		downSum += s.DownloadBytesPerSec
		n++
	}
	if n == 0 {
		return Speed{}, false
	}
	return Speed{
		UploadBytesPerSec:   upSum / n,
		DownloadBytesPerSec: downSum / n,
		Timestamp:           t.monitor.clock.Now(),
	}, true
}

// Peak returns the reading with the highest total throughput within the
// window, or ok=false when none qualify. Ties go to the most recently
// recorded reading.
func (t *Tracker) Peak(window time.Duration) (Speed, bool) {
	cutoff := t.monitor.clock.Now().Add(-window)

	var peak Speed
	found := false
	for _, s := range t.history.all() {
		if s.Timestamp.Before(cutoff) {
			continue
		}
		if !found || s.Total() >= peak.Total() {
			peak = s
			found = true
		}
	}
	return peak, found
}

// Clear empties the history without touching the monitor's snapshot state.
func (t *Tracker) Clear() {
	t.history.clear()
}

// Reset clears both the history and the monitor's snapshot state.
func (t *Tracker) Reset() {
	t.monitor.Reset()
	t.Clear()
}
