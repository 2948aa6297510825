package netspeed

import (
	"math"
	"testing"
)

func TestFormatBytesPerSecond(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0 B/s"},
		{512, "512 B/s"},
		{1023, "1023 B/s"},
		{1024, "1.00 KB/s"},
		{1536, "1.50 KB/s"},
		{1024 * 1024, "1.00 MB/s"},
		{5 * 1024 * 1024 * 1024, "5.00 GB/s"},
	}
	for _, tc := range cases {
		if got := FormatBytesPerSecond(tc.in); got != tc.want {
			t.Errorf("FormatBytesPerSecond(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatBitsPerSecond(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{999, "999 bps"},
		{8000, "8.00 Kbps"},
		{1_000_000, "1.00 Mbps"},
		{2_500_000_000, "2.50 Gbps"},
	}
	for _, tc := range cases {
		if got := FormatBitsPerSecond(tc.in); got != tc.want {
			t.Errorf("FormatBitsPerSecond(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSpeedTotalSaturates(t *testing.T) {
	s := Speed{UploadBytesPerSec: math.MaxUint64 - 10, DownloadBytesPerSec: 100}
	if s.Total() != math.MaxUint64 {
		t.Errorf("expected saturated total, got %d", s.Total())
	}

	s = Speed{UploadBytesPerSec: 10, DownloadBytesPerSec: 20}
	if s.Total() != 30 {
		t.Errorf("expected total 30, got %d", s.Total())
	}
}

func TestSpeedActive(t *testing.T) {
	s := Speed{UploadBytesPerSec: 100, DownloadBytesPerSec: 200}
	if !s.Active(250) {
		t.Error("expected active above threshold")
	}
	if s.Active(300) {
		t.Error("total equal to threshold should not be active")
	}
}

func TestSpeedMbps(t *testing.T) {
	s := Speed{UploadBytesPerSec: 125_000, DownloadBytesPerSec: 250_000}
	if got := s.UploadMbps(); got != 1.0 {
		t.Errorf("expected 1.0 Mbps upload, got %f", got)
	}
	if got := s.DownloadMbps(); got != 2.0 {
		t.Errorf("expected 2.0 Mbps download, got %f", got)
	}
}

func TestSpeedGbps(t *testing.T) {
	s := Speed{UploadBytesPerSec: 125_000_000, DownloadBytesPerSec: 250_000_000}
	if got := s.UploadGbps(); got != 1.0 {
		t.Errorf("expected 1.0 Gbps upload, got %f", got)
	}
	if got := s.DownloadGbps(); got != 2.0 {
		t.Errorf("expected 2.0 Gbps download, got %f", got)
	}
}
