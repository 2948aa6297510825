package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	netspeed "github.com/justrawaccel/network-speed"
	"github.com/justrawaccel/network-speed/internal/appconfig"
	"github.com/justrawaccel/network-speed/tui"
	"github.com/justrawaccel/network-speed/tui/styles"
)

func tuiCmd(args []string) {
	cfg := loadOrDefaultConfig()

	fs := flag.NewFlagSet("netspeed", flag.ExitOnError)
	theme := fs.String("theme", cfg.Theme, "theme override for this session")
	interval := fs.Duration("interval", cfg.RefreshInterval, "time between readings")
	statsWindow := fs.Duration("stats-window", cfg.RefreshInterval*60, "window for average and peak readouts")
	src := addSourceFlags(fs)

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: netspeed [--theme NAME] [--interval DUR] [--snmp HOST]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *theme != "" && styles.GetThemeByName(*theme) == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", *theme)
		fmt.Fprintln(os.Stderr, "Run 'netspeed themes' to see available themes.")
		os.Exit(1)
	}

	source, cleanup, label, err := src.build()
	if err != nil {
		fatal(err)
	}
	defer cleanup()

	mc, err := cfg.MonitorConfig()
	if err != nil {
		fatal(err)
	}
	monitor, err := netspeed.NewMonitor(mc, source)
	if err != nil {
		fatal(err)
	}
	tracker := netspeed.NewAsyncTrackerWith(netspeed.NewTrackerWith(monitor, cfg.MaxHistory))

	model := tui.NewAppModel(tracker, tui.Options{
		Theme:       *theme,
		Interval:    *interval,
		StatsWindow: *statsWindow,
		MaxHistory:  cfg.MaxHistory,
		Source:      label,
		Version:     version,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

func themesCmd() {
	for _, name := range styles.ListThemes() {
		fmt.Println(name)
	}
}

// loadOrDefaultConfig loads the settings file, falling back to defaults.
func loadOrDefaultConfig() *appconfig.Config {
	path, err := appconfig.ConfigPath()
	if err != nil {
		return appconfig.DefaultConfig()
	}
	cfg, err := appconfig.LoadConfig(path)
	if err != nil {
		return appconfig.DefaultConfig()
	}
	return cfg
}
