package appconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	netspeed "github.com/justrawaccel/network-speed"
)

type Config struct {
	Theme              string        `toml:"theme"`
	RefreshInterval    time.Duration `toml:"-"`
	RefreshIntervalStr string        `toml:"refresh_interval"`
	MaxHistory         int           `toml:"max_history"`

	Precision         string        `toml:"precision"` // instant, windowed, sampled
	Window            time.Duration `toml:"-"`
	WindowStr         string        `toml:"window"`
	SampleCount       int           `toml:"sample_count"`
	SampleInterval    time.Duration `toml:"-"`
	SampleIntervalStr string        `toml:"sample_interval"`

	IncludeVirtual   bool     `toml:"include_virtual"`
	IncludeLoopback  bool     `toml:"include_loopback"`
	IncludeBluetooth bool     `toml:"include_bluetooth"`
	NameFilters      []string `toml:"name_filters"`
	NamePatterns     []string `toml:"name_patterns"`

	SNMPHost      string `toml:"snmp_host"`
	SNMPPort      uint16 `toml:"snmp_port"`
	SNMPVersion   string `toml:"snmp_version"`
	SNMPCommunity string `toml:"snmp_community"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:              "solarized-dark",
		RefreshInterval:    time.Second,
		RefreshIntervalStr: "1s",
		MaxHistory:         300,
		Precision:          "instant",
		Window:             time.Second,
		WindowStr:          "1s",
		SampleCount:        5,
		SampleInterval:     200 * time.Millisecond,
		SampleIntervalStr:  "200ms",
		SNMPPort:           161,
		SNMPVersion:        "2c",
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	for _, d := range []struct {
		str string
		dst *time.Duration
	}{
		{cfg.RefreshIntervalStr, &cfg.RefreshInterval},
		{cfg.WindowStr, &cfg.Window},
		{cfg.SampleIntervalStr, &cfg.SampleInterval},
	} {
		if d.str == "" {
			continue
		}
		if parsed, err := time.ParseDuration(d.str); err == nil {
			*d.dst = parsed
		}
	}
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	cfg.RefreshIntervalStr = cfg.RefreshInterval.String()
	cfg.WindowStr = cfg.Window.String()
	cfg.SampleIntervalStr = cfg.SampleInterval.String()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// MonitorConfig maps the file settings onto a measurement configuration.
func (c *Config) MonitorConfig() (netspeed.Config, error) {
	mc := netspeed.DefaultConfig()
	mc.ExcludeVirtual = !c.IncludeVirtual
	mc.ExcludeLoopback = !c.IncludeLoopback
	mc.ExcludeBluetooth = !c.IncludeBluetooth
	if c.IncludeLoopback {
		mc.InterfaceTypeFilters = nil
	}
	mc.InterfaceNameFilters = append([]string(nil), c.NameFilters...)
	mc.IncludeInterfaceNamePatterns = append([]string(nil), c.NamePatterns...)

	switch c.Precision {
	case "", "instant":
		mc.Precision = netspeed.Instant{}
	case "windowed":
		mc.Precision = netspeed.Windowed{Duration: c.Window}
	case "sampled":
		mc.Precision = netspeed.Sampled{Count: c.SampleCount, Interval: c.SampleInterval}
	default:
		return netspeed.Config{}, fmt.Errorf("unknown precision %q", c.Precision)
	}
	if err := mc.Validate(); err != nil {
		return netspeed.Config{}, err
	}
	return mc, nil
}
