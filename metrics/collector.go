// Package metrics exposes throughput readings as Prometheus metrics.
package metrics

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	netspeed "github.com/justrawaccel/network-speed"
)

const namespace = "netspeed"

// Collector measures on every scrape and reports the current, windowed
// average, and windowed peak throughput. It implements prometheus.Collector.
type Collector struct {
	tracker *netspeed.AsyncTracker
	window  time.Duration
	timeout time.Duration

	upload       *prometheus.Desc
	download     *prometheus.Desc
	total        *prometheus.Desc
	avgUpload    *prometheus.Desc
	avgDownload  *prometheus.Desc
	peakUpload   *prometheus.Desc
	peakDownload *prometheus.Desc
	scrapeErrors *prometheus.Desc

	errorCount atomic.Uint64
}

// NewCollector builds a Collector around an AsyncTracker. The window bounds
// the average and peak queries; each scrape performs one measurement and is
// abandoned after timeout.
func NewCollector(tracker *netspeed.AsyncTracker, window, timeout time.Duration) *Collector {
	windowLabel := prometheus.Labels{"window": window.String()}
	return &Collector{
		tracker: tracker,
		window:  window,
		timeout: timeout,
		upload: prometheus.NewDesc(
			namespace+"_upload_bytes_per_second",
			"Most recent upload rate.",
			nil, nil),
		download: prometheus.NewDesc(
			namespace+"_download_bytes_per_second",
			"Most recent download rate.",
			nil, nil),
		total: prometheus.NewDesc(
			namespace+"_total_bytes_per_second",
			"Most recent combined rate.",
			nil, nil),
		avgUpload: prometheus.NewDesc(
			namespace+"_average_upload_bytes_per_second",
			"Windowed mean upload rate.",
			nil, windowLabel),
		avgDownload: prometheus.NewDesc(
			namespace+"_average_download_bytes_per_second",
			"Windowed mean download rate.",
			nil, windowLabel),
		peakUpload: prometheus.NewDesc(
			namespace+"_peak_upload_bytes_per_second",
			"Windowed peak upload rate.",
			nil, windowLabel),
		peakDownload: prometheus.NewDesc(
			namespace+"_peak_download_bytes_per_second",
			"Windowed peak download rate.",
			nil, windowLabel),
		scrapeErrors: prometheus.NewDesc(
			namespace+"_scrape_errors_total",
			"Measurements that failed during a scrape.",
			nil, nil),
	}
}

// Describe reports the static descriptors. Going through a Collect here
// would consume the cold-start baseline at registration time and starve the
// first real scrape.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.upload
	ch <- c.download
	ch <- c.total
	ch <- c.avgUpload
	ch <- c.avgDownload
	ch <- c.peakUpload
	ch <- c.peakDownload
	ch <- c.scrapeErrors
}

// Collect measures once and converts the tracker state to const metrics.
// Failed measurements only advance the error counter; history-derived metrics
// are still reported from whatever readings survive in the window.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	speed, err := c.tracker.Track(ctx)
	if err != nil {
		if !netspeed.Recoverable(err) {
			c.errorCount.Add(1)
		}
	} else {
		ch <- prometheus.MustNewConstMetric(c.upload, prometheus.GaugeValue, float64(speed.UploadBytesPerSec))
		ch <- prometheus.MustNewConstMetric(c.download, prometheus.GaugeValue, float64(speed.DownloadBytesPerSec))
		ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(speed.Total()))
	}

	if avg, ok := c.tracker.Average(c.window); ok {
		ch <- prometheus.MustNewConstMetric(c.avgUpload, prometheus.GaugeValue, float64(avg.UploadBytesPerSec))
		ch <- prometheus.MustNewConstMetric(c.avgDownload, prometheus.GaugeValue, float64(avg.DownloadBytesPerSec))
	}
	if peak, ok := c.tracker.Peak(c.window); ok {
		ch <- prometheus.MustNewConstMetric(c.peakUpload, prometheus.GaugeValue, float64(peak.UploadBytesPerSec))
		ch <- prometheus.MustNewConstMetric(c.peakDownload, prometheus.GaugeValue, float64(peak.DownloadBytesPerSec))
	}

	ch <- prometheus.MustNewConstMetric(c.scrapeErrors, prometheus.CounterValue, float64(c.errorCount.Load()))
}

// InterfaceCollector reports per-interface lifetime counters. It is separate
// from Collector so callers can register it against a different monitor
// configuration.
type InterfaceCollector struct {
	monitor *netspeed.AsyncMonitor
	timeout time.Duration

	totalBytes *prometheus.Desc
	linkSpeed  *prometheus.Desc
}

// NewInterfaceCollector builds a collector enumerating interfaces per scrape.
func NewInterfaceCollector(monitor *netspeed.AsyncMonitor, timeout time.Duration) *InterfaceCollector {
	return &InterfaceCollector{
		monitor: monitor,
		timeout: timeout,
		totalBytes: prometheus.NewDesc(
			namespace+"_interface_total_bytes",
			"Lifetime byte counter of each monitored interface.",
			[]string{"name", "type"}, nil),
		linkSpeed: prometheus.NewDesc(
			namespace+"_interface_link_bits_per_second",
			"Negotiated link speed of each monitored interface.",
			[]string{"name", "type"}, nil),
	}
}

func (c *InterfaceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalBytes
	ch <- c.linkSpeed
}

func (c *InterfaceCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	ifaces, err := c.monitor.Interfaces(ctx)
	if err != nil {
		return
	}
	for _, iface := range ifaces {
		ch <- prometheus.MustNewConstMetric(c.totalBytes, prometheus.CounterValue,
			float64(iface.TotalBytes()), iface.Description, iface.TypeName())
		if iface.Speed > 0 {
			ch <- prometheus.MustNewConstMetric(c.linkSpeed, prometheus.GaugeValue,
				float64(iface.Speed), iface.Description, iface.TypeName())
		}
	}
}
