package netspeed

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func counterBatch(sent, recv uint64) []Interface {
	return []Interface{
		{Index: 2, Type: TypeEthernet, Description: "eth0", Operational: true, BytesSent: sent, BytesRecv: recv},
	}
}

func newTestMonitor(t *testing.T, cfg Config, src Source) (*Monitor, *clock.Mock) {
	t.Helper()
	m, err := NewMonitor(cfg, src)
	if err != nil {
		t.Fatalf("NewMonitor() error: %v", err)
	}
	mock := clock.NewMock()
	m.clock = mock
	return m, mock
}

// advance nudges the mock clock forward once the goroutine under test has had
// a chance to park in Sleep.
func advance(mock *clock.Mock, d time.Duration) {
	time.Sleep(50 * time.Millisecond)
	mock.Add(d)
}

func TestMeasureInstantColdStart(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{counterBatch(1000, 2000)}}
	m, _ := newTestMonitor(t, DefaultConfig(), src)

	speed, err := m.Measure()
	if err != nil {
		t.Fatalf("first Measure() error: %v", err)
	}
	if speed.UploadBytesPerSec != 0 || speed.DownloadBytesPerSec != 0 {
		t.Errorf("cold start must report zero speed, got %+v", speed)
	}
}

func TestMeasureInstantDiff(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{
		counterBatch(1000, 2000),
		counterBatch(2000, 4000),
	}}
	m, mock := newTestMonitor(t, DefaultConfig(), src)

	if _, err := m.Measure(); err != nil {
		t.Fatalf("warmup Measure() error: %v", err)
	}
	mock.Add(time.Second)

	speed, err := m.Measure()
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	if speed.UploadBytesPerSec != 1000 {
		t.Errorf("expected 1000 B/s upload, got %d", speed.UploadBytesPerSec)
	}
	if speed.DownloadBytesPerSec != 2000 {
		t.Errorf("expected 2000 B/s download, got %d", speed.DownloadBytesPerSec)
	}
}

func TestMeasureInstantTooSoon(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{
		counterBatch(1000, 2000),
		counterBatch(1100, 2100),
		counterBatch(2100, 4100),
	}}
	m, mock := newTestMonitor(t, DefaultConfig(), src)

	if _, err := m.Measure(); err != nil {
		t.Fatalf("warmup Measure() error: %v", err)
	}

	// No clock movement: rejected, but the fresh snapshot is still stored.
	_, err := m.Measure()
	var ite *InsufficientTimeError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InsufficientTimeError, got %v", err)
	}

	mock.Add(time.Second)
	speed, err := m.Measure()
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	// Diff runs against the rejected call's snapshot (1100/2100), not the
	// warmup's.
	if speed.UploadBytesPerSec != 1000 || speed.DownloadBytesPerSec != 2000 {
		t.Errorf("expected 1000/2000 B/s, got %d/%d", speed.UploadBytesPerSec, speed.DownloadBytesPerSec)
	}
}

func TestMeasureWindowed(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{
		counterBatch(0, 0),
		counterBatch(5000, 10000),
	}}
	cfg := DefaultConfig().WithPrecision(Windowed{Duration: time.Second})
	m, mock := newTestMonitor(t, cfg, src)

	done := make(chan Sample, 1)
	go func() {
		speed, err := m.Measure()
		done <- Sample{Speed: speed, Err: err}
	}()
	advance(mock, time.Second)

	r := <-done
	if r.Err != nil {
		t.Fatalf("Measure() error: %v", r.Err)
	}
	if r.Speed.UploadBytesPerSec != 5000 || r.Speed.DownloadBytesPerSec != 10000 {
		t.Errorf("expected 5000/10000 B/s, got %d/%d", r.Speed.UploadBytesPerSec, r.Speed.DownloadBytesPerSec)
	}
}

func TestMeasureSampled(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{
		counterBatch(0, 0),
		counterBatch(500, 500),
		counterBatch(500, 500),
		counterBatch(1500, 2500),
	}}
	cfg := DefaultConfig().WithPrecision(Sampled{Count: 2, Interval: time.Second})
	m, mock := newTestMonitor(t, cfg, src)

	done := make(chan Sample, 1)
	go func() {
		speed, err := m.Measure()
		done <- Sample{Speed: speed, Err: err}
	}()
	advance(mock, time.Second)
	advance(mock, time.Second)

	r := <-done
	if r.Err != nil {
		t.Fatalf("Measure() error: %v", r.Err)
	}
	// Windows measured 500/500 and 1000/2000; the mean is 750/1250.
	if r.Speed.UploadBytesPerSec != 750 || r.Speed.DownloadBytesPerSec != 1250 {
		t.Errorf("expected 750/1250 B/s, got %d/%d", r.Speed.UploadBytesPerSec, r.Speed.DownloadBytesPerSec)
	}
}

func TestMeasureWindowOverridesPrecision(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{
		counterBatch(0, 0),
		counterBatch(2000, 2000),
	}}
	// Configured Instant; the escape hatch still measures over a window.
	m, mock := newTestMonitor(t, DefaultConfig(), src)

	done := make(chan Sample, 1)
	go func() {
		speed, err := m.MeasureWindow(time.Second)
		done <- Sample{Speed: speed, Err: err}
	}()
	advance(mock, time.Second)

	r := <-done
	if r.Err != nil {
		t.Fatalf("MeasureWindow() error: %v", r.Err)
	}
	if r.Speed.UploadBytesPerSec != 2000 {
		t.Errorf("expected 2000 B/s, got %d", r.Speed.UploadBytesPerSec)
	}
}

func TestMeasureWindowRejectedStillSlidesBaseline(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{
		counterBatch(0, 0),
		counterBatch(1000, 1000),
		counterBatch(2000, 2000),
	}}
	m, mock := newTestMonitor(t, DefaultConfig(), src)

	// A window under the minimum interval is rejected, but its closing
	// snapshot still becomes the stored baseline.
	done := make(chan error, 1)
	go func() {
		_, err := m.MeasureWindow(50 * time.Millisecond)
		done <- err
	}()
	advance(mock, 50*time.Millisecond)

	err := <-done
	var ite *InsufficientTimeError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InsufficientTimeError for a too-short window, got %v", err)
	}

	mock.Add(time.Second)
	speed, err := m.Measure()
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	// Diffed against the window's closing snapshot (1000), not its opening
	// one (0).
	if speed.UploadBytesPerSec != 1000 {
		t.Errorf("expected 1000 B/s from the slid baseline, got %d", speed.UploadBytesPerSec)
	}
}

func TestInstantaneousSpeedNotReady(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{counterBatch(1000, 2000)}}
	m, _ := newTestMonitor(t, DefaultConfig(), src)

	if _, ok, err := m.InstantaneousSpeed(); ok || err != nil {
		t.Fatalf("fresh monitor should be not-ready, got ok=%v err=%v", ok, err)
	}

	if _, err := m.Measure(); err != nil {
		t.Fatalf("Measure() error: %v", err)
	}

	// Warmed, but no time has passed: still not ready, still no error.
	if _, ok, err := m.InstantaneousSpeed(); ok || err != nil {
		t.Fatalf("too-soon reading should be not-ready, got ok=%v err=%v", ok, err)
	}
}

func TestInstantaneousSpeedReady(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{
		counterBatch(1000, 2000),
		counterBatch(2000, 3000),
	}}
	m, mock := newTestMonitor(t, DefaultConfig(), src)

	if _, err := m.Measure(); err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	mock.Add(time.Second)

	speed, ok, err := m.InstantaneousSpeed()
	if err != nil || !ok {
		t.Fatalf("expected ready reading, got ok=%v err=%v", ok, err)
	}
	if speed.UploadBytesPerSec != 1000 {
		t.Errorf("expected 1000 B/s upload, got %d", speed.UploadBytesPerSec)
	}
}

func TestInstantaneousSpeedPropagatesFaults(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{counterBatch(1000, 2000)}}
	m, mock := newTestMonitor(t, DefaultConfig(), src)

	if _, err := m.Measure(); err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	mock.Add(time.Second)
	src.err = errors.New("provider exploded")

	if _, _, err := m.InstantaneousSpeed(); err == nil {
		t.Fatal("provider faults must surface, not be mapped to not-ready")
	}
}

func TestUpdateConfigResetsBaseline(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{counterBatch(1000, 2000)}}
	m, mock := newTestMonitor(t, DefaultConfig(), src)

	if _, err := m.Measure(); err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	mock.Add(time.Second)

	if err := m.UpdateConfig(DefaultConfig().WithMinInterval(200 * time.Millisecond)); err != nil {
		t.Fatalf("UpdateConfig() error: %v", err)
	}
	if m.Config().MinMeasurementInterval != 200*time.Millisecond {
		t.Error("new config not adopted")
	}

	speed, err := m.Measure()
	if err != nil {
		t.Fatalf("Measure() after update error: %v", err)
	}
	if speed.UploadBytesPerSec != 0 || speed.DownloadBytesPerSec != 0 {
		t.Errorf("update must reset to cold start, got %+v", speed)
	}
}

func TestUpdateConfigRejectsInvalid(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{counterBatch(1000, 2000)}}
	m, _ := newTestMonitor(t, DefaultConfig(), src)

	bad := DefaultConfig()
	bad.MaxCounterWrapThreshold = 0
	if err := m.UpdateConfig(bad); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
	if m.Config().MaxCounterWrapThreshold == 0 {
		t.Error("rejected config must not be adopted")
	}
}

func TestResetClearsBaselineOnly(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{counterBatch(1000, 2000)}}
	m, mock := newTestMonitor(t, DefaultConfig(), src)

	if _, err := m.Measure(); err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	mock.Add(time.Second)
	m.Reset()

	speed, err := m.Measure()
	if err != nil {
		t.Fatalf("Measure() after reset error: %v", err)
	}
	if speed.UploadBytesPerSec != 0 || speed.DownloadBytesPerSec != 0 {
		t.Errorf("reset must return to cold start, got %+v", speed)
	}
}

func TestMeasurePropagatesNoInterfaces(t *testing.T) {
	cfg := DefaultConfig().WithNameFilter("eth0")
	src := &fakeSource{batches: [][]Interface{counterBatch(1000, 2000)}}
	m, _ := newTestMonitor(t, cfg, src)

	if _, err := m.Measure(); !errors.Is(err, ErrNoInterfaces) {
		t.Fatalf("expected ErrNoInterfaces, got %v", err)
	}
}
