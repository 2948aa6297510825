package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

// knownSubcommands is the set of CLI subcommands that bypass the TUI.
var knownSubcommands = map[string]bool{
	"measure":    true,
	"watch":      true,
	"interfaces": true,
	"serve":      true,
	"themes":     true,
	"version":    true,
	"help":       true,
}

func main() {
	args := os.Args[1:]
	if len(args) > 0 && knownSubcommands[args[0]] {
		execute(args)
		return
	}
	tuiCmd(args)
}

// execute dispatches to the appropriate CLI subcommand handler.
func execute(args []string) {
	switch args[0] {
	case "measure":
		measureCmd(args[1:])
	case "watch":
		watchCmd(args[1:])
	case "interfaces":
		interfacesCmd(args[1:])
	case "serve":
		serveCmd(args[1:])
	case "themes":
		themesCmd()
	case "version":
		fmt.Println("netspeed v" + version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`netspeed - network throughput monitor

Usage:
  netspeed                    Launch TUI monitor
  netspeed --theme NAME       Launch with theme override
  netspeed --snmp HOST        Monitor a remote SNMP agent
  netspeed measure            One-shot throughput measurement
  netspeed watch              Stream readings to stdout
  netspeed interfaces         List monitored interfaces
  netspeed serve              Expose Prometheus metrics
  netspeed themes             List available themes
  netspeed version            Show version
  netspeed help               Show this help

Measure:
  netspeed measure [--window 1s]                 Windowed measurement
  netspeed measure --samples 5 --sample-interval 200ms
  netspeed measure --duration 10s                Average over a period
  netspeed measure --bits                        Report bits per second

Watch:
  netspeed watch [--interval 1s] [--count N] [--bits]

Serve:
  netspeed serve [--listen :9109] [--stats-window 1m]

Remote agents (any command):
  --snmp HOST [--snmp-port 161] [--snmp-version 2c] [--community STR]
  --snmp-version 3 --snmp-user NAME [--snmp-auth-proto SHA ...]`)
}
