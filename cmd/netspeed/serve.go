package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	netspeed "github.com/justrawaccel/network-speed"
	"github.com/justrawaccel/network-speed/metrics"
)

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	listen := fs.String("listen", ":9109", "listen address for the metrics endpoint")
	statsWindow := fs.Duration("stats-window", time.Minute, "window for average and peak metrics")
	maxHistory := fs.Int("max-history", 600, "readings retained for windowed metrics")
	scrapeTimeout := fs.Duration("scrape-timeout", 10*time.Second, "per-scrape measurement timeout")
	src := addSourceFlags(fs)

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: netspeed serve [--listen ADDR] [--stats-window DUR]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	source, cleanup, label, err := src.build()
	if err != nil {
		fatal(err)
	}
	defer cleanup()

	monitor, err := netspeed.NewMonitor(netspeed.DefaultConfig(), source)
	if err != nil {
		fatal(err)
	}
	tracker := netspeed.NewAsyncTrackerWith(netspeed.NewTrackerWith(monitor, *maxHistory))

	registry := prometheus.NewRegistry()
	registry.MustRegister(metrics.NewCollector(tracker, *statsWindow, *scrapeTimeout))

	// The registry gathers collectors concurrently, and an SNMP source wraps a
	// single client that must not run two walks at once. Each collector gets
	// its own source.
	ifSource, ifCleanup, _, err := src.build()
	if err != nil {
		fatal(err)
	}
	defer ifCleanup()
	ifMonitor, err := netspeed.NewMonitor(netspeed.DefaultConfig(), ifSource)
	if err != nil {
		fatal(err)
	}
	registry.MustRegister(metrics.NewInterfaceCollector(netspeed.NewAsyncMonitorWith(ifMonitor), *scrapeTimeout))

	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	fmt.Fprintf(os.Stderr, "Serving %s metrics on %s/metrics\n", label, *listen)
	if err := http.ListenAndServe(*listen, nil); err != nil {
		fatal(err)
	}
}
