package netspeed

import (
	"fmt"
	"strings"
)

// IANA ifType codes for the interface kinds this package cares about.
const (
	TypeOther     uint32 = 1
	TypeEthernet  uint32 = 6
	TypeTokenRing uint32 = 9
	TypePPP       uint32 = 23
	TypeLoopback  uint32 = 24
	TypeSerial    uint32 = 37
	TypeWiFi      uint32 = 71
	TypeTunnel    uint32 = 131
	TypeWWAN      uint32 = 144
	TypeWiMAX     uint32 = 145
)

// Source enumerates raw interface descriptors from some backend (the live
// system tables, /proc/net/dev, a remote SNMP agent). Descriptors are
// ephemeral: each Enumerate call re-reads them.
type Source interface {
	Enumerate() ([]Interface, error)
}

// Interface is one enumeration result: identity, operational state, and the
// cumulative byte counters at the moment of the call.
type Interface struct {
	Index       uint32
	Type        uint32
	Description string
	Operational bool
	BytesSent   uint64
	BytesRecv   uint64
	Speed       uint64 // link speed in bits per second, 0 if unknown
}

// virtualKeywords flags software adapters by description. Matching is
// case-insensitive substring.
var virtualKeywords = []string{
	"virtual",
	"vpn",
	"tunnel",
	"tap",
	"tun",
	"vmware",
	"virtualbox",
	"hyper-v",
	"teredo",
	"6to4",
	"microsoft wi-fi direct virtual adapter",
	"isatap",
	"wan miniport",
	"ras async adapter",
	"pptp",
	"l2tp",
	"sstp",
	"ikev2",
	"ppp",
	"dial-up",
}

// IsLoopback reports whether the interface is the loopback type.
func (i Interface) IsLoopback() bool { return i.Type == TypeLoopback }

// IsVirtual reports whether the description matches the virtual-adapter
// keyword set.
func (i Interface) IsVirtual() bool {
	desc := strings.ToLower(i.Description)
	for _, kw := range virtualKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// IsBluetooth reports whether the description names a bluetooth adapter.
func (i Interface) IsBluetooth() bool {
	return strings.Contains(strings.ToLower(i.Description), "bluetooth")
}

// TotalBytes returns the combined counters, saturating on overflow.
func (i Interface) TotalBytes() uint64 {
	total := i.BytesSent + i.BytesRecv
	if total < i.BytesSent {
		return ^uint64(0)
	}
	return total
}

// TypeName returns a human-readable name for the interface type code.
func (i Interface) TypeName() string {
	switch i.Type {
	case TypeOther:
		return "Other"
	case TypeEthernet:
		return "Ethernet"
	case TypeTokenRing:
		return "Token Ring"
	case TypePPP:
		return "PPP"
	case TypeLoopback:
		return "Loopback"
	case TypeSerial:
		return "Serial"
	case TypeWiFi:
		return "Wi-Fi"
	case TypeTunnel:
		return "Tunnel"
	case TypeWWAN:
		return "WWAN"
	case TypeWiMAX:
		return "WiMAX"
	default:
		return "Unknown"
	}
}

// FormattedSpeed renders the link speed in bit units.
func (i Interface) FormattedSpeed() string {
	return FormatBitsPerSecond(i.Speed)
}

// Directory applies a Config's filter rules to an enumeration Source and
// caches the last accepted set by index.
type Directory struct {
	config Config
	source Source
	cache  map[uint32]Interface
}

// NewDirectory creates a Directory over the given source. The config is
// assumed validated by the caller.
func NewDirectory(cfg Config, src Source) *Directory {
	return &Directory{
		config: cfg,
		source: src,
		cache:  make(map[uint32]Interface),
	}
}

// Accepted enumerates all interfaces and returns those surviving the filter
// rules, replacing the cache wholesale. An empty accepted set clears the cache
// and fails with ErrNoInterfaces.
func (d *Directory) Accepted() ([]Interface, error) {
	raw, err := d.source.Enumerate()
	if err != nil {
		return nil, fmt.Errorf("enumerate interfaces: %w", err)
	}

	accepted := make([]Interface, 0, len(raw))
	cache := make(map[uint32]Interface, len(raw))
	for _, iface := range raw {
		if !d.accepts(iface) {
			continue
		}
		cache[iface.Index] = iface
		accepted = append(accepted, iface)
	}

	if len(accepted) == 0 {
		d.cache = make(map[uint32]Interface)
		return nil, ErrNoInterfaces
	}

	d.cache = cache
	return accepted, nil
}

// TotalTraffic sums sent/received counters across the accepted set. This is
// the single aggregation point: no weighting, no outlier exclusion.
func (d *Directory) TotalTraffic() (sent, recv uint64, err error) {
	ifaces, err := d.Accepted()
	if err != nil {
		return 0, 0, err
	}
	for _, iface := range ifaces {
		sent += iface.BytesSent
		recv += iface.BytesRecv
	}
	return sent, recv, nil
}

// ByIndex returns the cached descriptor for an index from the last Accepted
// call.
func (d *Directory) ByIndex(index uint32) (Interface, bool) {
	iface, ok := d.cache[index]
	return iface, ok
}

// Refresh drops the cache and re-enumerates.
func (d *Directory) Refresh() error {
	d.cache = make(map[uint32]Interface)
	_, err := d.Accepted()
	return err
}

// accepts applies the filter rules in fixed order: inclusion allow-lists
// first, then the exclusion toggles and filter lists. First matching
// exclusion wins.
func (d *Directory) accepts(iface Interface) bool {
	if len(d.config.IncludeInterfaceIndices) > 0 {
		if !containsUint32(d.config.IncludeInterfaceIndices, iface.Index) {
			return false
		}
	}

	if len(d.config.IncludeInterfaceNamePatterns) > 0 {
		desc := strings.ToLower(iface.Description)
		matched := false
		for _, pat := range d.config.IncludeInterfaceNamePatterns {
			if strings.Contains(desc, strings.ToLower(pat)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if d.config.ExcludeLoopback && iface.IsLoopback() {
		return false
	}
	if d.config.ExcludeVirtual && iface.IsVirtual() {
		return false
	}
	if d.config.ExcludeBluetooth && iface.IsBluetooth() {
		return false
	}
	if containsUint32(d.config.InterfaceTypeFilters, iface.Type) {
		return false
	}

	desc := strings.ToLower(iface.Description)
	for _, filter := range d.config.InterfaceNameFilters {
		if strings.Contains(desc, strings.ToLower(filter)) {
			return false
		}
	}

	return true
}

func containsUint32(list []uint32, v uint32) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
