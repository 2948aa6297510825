package netspeed

import (
	"fmt"
	stdnet "net"
	"sort"

	"github.com/prometheus/procfs"
)

// NetDevSource enumerates interfaces from the classic /proc/net/dev counter
// table. It is the legacy fallback behind SystemSource: older but universally
// present on Linux hosts.
type NetDevSource struct {
	mountPoint string
}

// NewNetDevSource creates a source over the default /proc mount.
func NewNetDevSource() *NetDevSource {
	return &NetDevSource{mountPoint: procfs.DefaultMountPoint}
}

// Enumerate implements Source.
func (s *NetDevSource) Enumerate() ([]Interface, error) {
	fs, err := procfs.NewFS(s.mountPoint)
	if err != nil {
		// No procfs on this platform.
		return nil, fmt.Errorf("procfs %s: %w", s.mountPoint, ErrUnsupported)
	}
	dev, err := fs.NetDev()
	if err != nil {
		return nil, fmt.Errorf("read net/dev: %w", err)
	}

	out := make([]Interface, 0, len(dev))
	for name, line := range dev {
		ni, err := stdnet.InterfaceByName(name)
		if err != nil {
			// Counter row for an interface the kernel no longer reports.
			continue
		}
		out = append(out, Interface{
			Index:       uint32(ni.Index),
			Type:        classifyNetDev(name, ni.Flags),
			Description: name,
			Operational: ni.Flags&stdnet.FlagUp != 0,
			BytesSent:   line.TxBytes,
			BytesRecv:   line.RxBytes,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

func classifyNetDev(name string, flags stdnet.Flags) uint32 {
	var strFlags []string
	if flags&stdnet.FlagLoopback != 0 {
		strFlags = append(strFlags, "loopback")
	}
	if flags&stdnet.FlagPointToPoint != 0 {
		strFlags = append(strFlags, "pointtopoint")
	}
	return classifyInterface(name, strFlags)
}
