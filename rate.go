package netspeed

import "time"

// Snapshot is one timestamped read of aggregate sent/received byte counters
// across the currently accepted interfaces.
type Snapshot struct {
	BytesSent uint64
	BytesRecv uint64
	Timestamp time.Time
}

// TotalBytes returns the combined counter value, saturating on overflow.
func (s Snapshot) TotalBytes() uint64 {
	total := s.BytesSent + s.BytesRecv
	if total < s.BytesSent {
		return ^uint64(0)
	}
	return total
}

// ComputeSpeed derives a throughput reading from two snapshots.
//
// Counter diffs use wrapping subtraction, so a genuine fixed-width counter
// rollover yields a small positive diff. Wrapping cannot distinguish a rollover
// from a counter that went backward after a reset or driver reload; diffs above
// wrapThreshold are therefore rejected as ErrCalculationOverflow rather than
// turned into a fabricated speed.
func ComputeSpeed(curr, prev Snapshot, minElapsed time.Duration, wrapThreshold uint64) (Speed, error) {
	elapsed := curr.Timestamp.Sub(prev.Timestamp)
	if elapsed < minElapsed {
		return Speed{}, &InsufficientTimeError{Min: minElapsed, Actual: elapsed}
	}

	seconds := elapsed.Seconds()
	if seconds <= 0 {
		// Clock non-monotonicity guard.
		return Speed{}, &InsufficientTimeError{Min: minElapsed, Actual: 0}
	}

	uploadDiff := curr.BytesSent - prev.BytesSent
	downloadDiff := curr.BytesRecv - prev.BytesRecv

	if uploadDiff > wrapThreshold || downloadDiff > wrapThreshold {
		return Speed{}, ErrCalculationOverflow
	}

	return Speed{
		UploadBytesPerSec:   uint64(float64(uploadDiff) / seconds),
		DownloadBytesPerSec: uint64(float64(downloadDiff) / seconds),
		Timestamp:           curr.Timestamp,
	}, nil
}
