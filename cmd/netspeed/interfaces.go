package main

import (
	"flag"
	"fmt"
	"os"

	netspeed "github.com/justrawaccel/network-speed"
)

func interfacesCmd(args []string) {
	fs := flag.NewFlagSet("interfaces", flag.ExitOnError)
	all := fs.Bool("all", false, "bypass filters and list every interface")
	src := addSourceFlags(fs)

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: netspeed interfaces [--all]")
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
	var ifaces []netspeed.Interface
	if *all {
		ifaces, err = monitor.ListAllInterfaces()
	} else {
		ifaces, err = monitor.Interfaces()
	}
	if err != nil {
		fatal(err)
	}
	if len(ifaces) == 0 {
		fmt.Println("No interfaces found.")
		return
	}

	fmt.Printf("Found %d interfaces on %s:\n\n", len(ifaces), label)
	fmt.Printf("%-6s  %-6s  %-14s  %-36s  %10s  %14s\n", "Index", "Status", "Type", "Description", "Link", "Total")
	fmt.Printf("%-6s  %-6s  %-14s  %-36s  %10s  %14s\n", "-----", "------", "----", "-----------", "----", "-----")

	for _, iface := range ifaces {
		status := "down"
		if iface.Operational {
			status = "up"
		}
		fmt.Printf("%-6d  %-6s  %-14s  %-36s  %10s  %14d\n",
			iface.Index,
			status,
			truncate(iface.TypeName(), 14),
			truncate(iface.Description, 36),
			iface.FormattedSpeed(),
			iface.TotalBytes(),
		)
	}
}

// truncate shortens a string to the given max length, adding "..." if needed.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
