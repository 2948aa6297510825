package netspeed

import (
	"fmt"
	"sort"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// SystemSource enumerates the host's interfaces through gopsutil, joining the
// interface table with the per-NIC I/O counter table by name.
type SystemSource struct{}

// NewSystemSource creates the preferred local enumeration backend.
func NewSystemSource() *SystemSource {
	return &SystemSource{}
}

// Enumerate implements Source.
func (s *SystemSource) Enumerate() ([]Interface, error) {
	ifaces, err := psnet.Interfaces()
	if err != nil {
		return nil, systemErr("interface table", err)
	}
	counters, err := psnet.IOCounters(true)
	if err != nil {
		return nil, systemErr("io counters", err)
	}

	byName := make(map[string]psnet.IOCountersStat, len(counters))
	for _, c := range counters {
		byName[c.Name] = c
	}

	out := make([]Interface, 0, len(ifaces))
	for _, st := range ifaces {
		c, ok := byName[st.Name]
		if !ok {
			continue
		}
		out = append(out, Interface{
			Index:       uint32(st.Index),
			Type:        classifyInterface(st.Name, st.Flags),
			Description: st.Name,
			Operational: hasFlag(st.Flags, "up"),
			BytesSent:   c.BytesSent,
			BytesRecv:   c.BytesRecv,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// systemErr maps gopsutil's not-implemented error onto ErrUnsupported so the
// chain can advance to the legacy backend.
func systemErr(op string, err error) error {
	if strings.Contains(err.Error(), "not implemented") {
		return fmt.Errorf("system %s: %w", op, ErrUnsupported)
	}
	return fmt.Errorf("system %s: %w", op, err)
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}

// classifyInterface maps kernel flags and naming conventions onto IANA ifType
// codes. The host tables do not carry a type code directly, so this is a
// best-effort projection.
func classifyInterface(name string, flags []string) uint32 {
	if hasFlag(flags, "loopback") {
		return TypeLoopback
	}
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "wl"), strings.HasPrefix(lower, "wifi"), strings.HasPrefix(lower, "ath"):
		return TypeWiFi
	case strings.HasPrefix(lower, "tun"), strings.HasPrefix(lower, "tap"), strings.HasPrefix(lower, "wg"):
		return TypeTunnel
	case strings.HasPrefix(lower, "ppp"):
		return TypePPP
	case strings.HasPrefix(lower, "wwan"):
		return TypeWWAN
	case hasFlag(flags, "pointtopoint"):
		return TypePPP
	default:
		return TypeEthernet
	}
}
