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

func watchCmd(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	interval := fs.Duration("interval", time.Second, "time between readings")
	count := fs.Int("count", 0, "stop after this many readings (0 runs until interrupted)")
	bits := fs.Bool("bits", false, "report bits per second")
	src := addSourceFlags(fs)

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: netspeed watch [--interval DUR] [--bits]")
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
	am := netspeed.NewAsyncMonitorWith(monitor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Watching %s every %s. Ctrl-C to stop.\n", label, *interval)
	printed := 0
	for sample := range am.MonitorWithChannel(ctx, *interval, 4) {
		if sample.Err != nil {
			if netspeed.Recoverable(sample.Err) {
				continue
			}
			fatal(sample.Err)
		}
		fmt.Printf("%s  up %-12s  down %-12s\n",
			sample.Speed.Timestamp.Format("15:04:05"),
			formatRate(sample.Speed.UploadBytesPerSec, *bits),
			formatRate(sample.Speed.DownloadBytesPerSec, *bits),
		)
		printed++
		if *count > 0 && printed >= *count {
			break
		}
	}
}
