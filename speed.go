package netspeed

import (
	"fmt"
	"math"
	"time"
)

// Speed is one derived throughput reading. It is immutable once produced and
// is the unit of exchange between the monitor, tracker, and bridge layers.
type Speed struct {
	UploadBytesPerSec   uint64
	DownloadBytesPerSec uint64
	Timestamp           time.Time
}

// Total returns combined throughput, saturating instead of wrapping.
func (s Speed) Total() uint64 {
	if s.UploadBytesPerSec > math.MaxUint64-s.DownloadBytesPerSec {
		return math.MaxUint64
	}
	return s.UploadBytesPerSec + s.DownloadBytesPerSec
}

// Active reports whether total throughput exceeds the given threshold.
func (s Speed) Active(thresholdBytesPerSec uint64) bool {
	return s.Total() > thresholdBytesPerSec
}

// UploadKbps returns the upload rate in kilobits per second.
func (s Speed) UploadKbps() float64 {
	return float64(s.UploadBytesPerSec) * 8 / 1_000
}

// DownloadKbps returns the download rate in kilobits per second.
func (s Speed) DownloadKbps() float64 {
	return float64(s.DownloadBytesPerSec) * 8 / 1_000
}

// UploadMbps returns the upload rate in megabits per second.
func (s Speed) UploadMbps() float64 {
	return float64(s.UploadBytesPerSec) * 8 / 1_000_000
}

// DownloadMbps returns the download rate in megabits per second.
func (s Speed) DownloadMbps() float64 {
	return float64(s.DownloadBytesPerSec) * 8 / 1_000_000
}

// UploadGbps returns the upload rate in gigabits per second.
func (s Speed) UploadGbps() float64 {
	return float64(s.UploadBytesPerSec) * 8 / 1_000_000_000
}

// DownloadGbps returns the download rate in gigabits per second.
func (s Speed) DownloadGbps() float64 {
	return float64(s.DownloadBytesPerSec) * 8 / 1_000_000_000
}

// FormatUpload renders the upload rate in byte units.
func (s Speed) FormatUpload() string {
	return FormatBytesPerSecond(s.UploadBytesPerSec)
}

// FormatDownload renders the download rate in byte units.
func (s Speed) FormatDownload() string {
	return FormatBytesPerSecond(s.DownloadBytesPerSec)
}

var byteUnits = []string{"B/s", "KB/s", "MB/s", "GB/s", "TB/s"}
var bitUnits = []string{"bps", "Kbps", "Mbps", "Gbps", "Tbps"}

// FormatBytesPerSecond renders a byte rate with base-1024 unit steps. Values
// under one step print as an exact integer, values at or above with two
// decimals.
func FormatBytesPerSecond(bytesPerSec uint64) string {
	return formatScaled(bytesPerSec, 1024, byteUnits)
}

// FormatBitsPerSecond renders a bit rate with base-1000 unit steps.
func FormatBitsPerSecond(bitsPerSec uint64) string {
	return formatScaled(bitsPerSec, 1000, bitUnits)
}

func formatScaled(v uint64, step float64, units []string) string {
	size := float64(v)
	idx := 0
	for size >= step && idx < len(units)-1 {
		size /= step
		idx++
	}
	if idx == 0 {
		return fmt.Sprintf("%d %s", v, units[0])
	}
	return fmt.Sprintf("%.2f %s", size, units[idx])
}
