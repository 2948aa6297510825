package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	netspeed "github.com/justrawaccel/network-speed"
)

func measureCmd(args []string) {
	fs := flag.NewFlagSet("measure", flag.ExitOnError)
	window := fs.Duration("window", time.Second, "measurement window")
	samples := fs.Int("samples", 0, "number of sampled sub-measurements (0 disables sampling)")
	sampleInterval := fs.Duration("sample-interval", 200*time.Millisecond, "interval between sampled sub-measurements")
	duration := fs.Duration("duration", 0, "average over this period instead of one window")
	bits := fs.Bool("bits", false, "report bits per second")
	src := addSourceFlags(fs)

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: netspeed measure [--window DUR | --samples N | --duration DUR]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	source, cleanup, _, err := src.build()
	if err != nil {
		fatal(err)
	}
	defer cleanup()

	cfg := netspeed.DefaultConfig().WithPrecision(netspeed.Windowed{Duration: *window})
	if *samples > 0 {
		cfg = cfg.WithPrecision(netspeed.Sampled{Count: *samples, Interval: *sampleInterval})
	}

	monitor, err := netspeed.NewMonitor(cfg, source)
	if err != nil {
		fatal(err)
	}
	am := netspeed.NewAsyncMonitorWith(monitor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var speed netspeed.Speed
	if *duration > 0 {
		speed, err = am.MeasureAverageSpeed(ctx, *duration, *sampleInterval)
	} else {
		speed, err = am.Measure(ctx)
	}
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Upload:   %s\n", formatRate(speed.UploadBytesPerSec, *bits))
	fmt.Printf("Download: %s\n", formatRate(speed.DownloadBytesPerSec, *bits))
	fmt.Printf("Total:    %s\n", formatRate(speed.Total(), *bits))
}

func formatRate(bytesPerSec uint64, bits bool) string {
	if bits {
		return netspeed.FormatBitsPerSecond(bytesPerSec * 8)
	}
	return netspeed.FormatBytesPerSecond(bytesPerSec)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
