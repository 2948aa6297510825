package netspeed

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
)

// IF-MIB OIDs used for remote enumeration.
const (
	oidIfDescr       = "1.3.6.1.2.1.2.2.1.2"
	oidIfType        = "1.3.6.1.2.1.2.2.1.3"
	oidIfOperStatus  = "1.3.6.1.2.1.2.2.1.8"
	oidIfHCInOctets  = "1.3.6.1.2.1.31.1.1.1.6"
	oidIfHCOutOctets = "1.3.6.1.2.1.31.1.1.1.10"
	oidIfHighSpeed   = "1.3.6.1.2.1.31.1.1.1.15"
)

// SNMPConfig describes how to reach and authenticate against a remote SNMP
// agent.
type SNMPConfig struct {
	Host      string
	Port      uint16        // defaults to 161
	Version   string        // "1", "2c", "3"
	Community string        // v1/v2c
	Username  string        // v3
	AuthProto string        // "MD5", "SHA", "SHA256", "SHA512"
	AuthPass  string
	PrivProto string        // "DES", "AES", "AES128", "AES192", "AES256"
	PrivPass  string
	Timeout   time.Duration // defaults to 5s
}

// SNMPSource enumerates a remote device's interface table over SNMP, so the
// same engine can rate a router's or switch's traffic instead of the local
// host's.
type SNMPSource struct {
	client *gosnmp.GoSNMP
}

// NewSNMPSource builds a source for the given agent. Call Connect before the
// first Enumerate and Close when done.
func NewSNMPSource(cfg SNMPConfig) (*SNMPSource, error) {
	port := cfg.Port
	if port == 0 {
		port = 161
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	client := &gosnmp.GoSNMP{
		Target:  cfg.Host,
		Port:    port,
		Timeout: timeout,
		Retries: 2,
	}

	switch cfg.Version {
	case "1":
		client.Version = gosnmp.Version1
		client.Community = cfg.Community
	case "", "2c":
		client.Version = gosnmp.Version2c
		client.Community = cfg.Community
	case "3":
		client.Version = gosnmp.Version3
		client.SecurityModel = gosnmp.UserSecurityModel
		client.MsgFlags = snmpv3MsgFlags(cfg)
		client.SecurityParameters = &gosnmp.UsmSecurityParameters{
			UserName:                 cfg.Username,
			AuthenticationProtocol:   snmpv3AuthProto(cfg.AuthProto),
			AuthenticationPassphrase: cfg.AuthPass,
			PrivacyProtocol:          snmpv3PrivProto(cfg.PrivProto),
			PrivacyPassphrase:        cfg.PrivPass,
		}
	default:
		return nil, &ConfigError{Field: "unsupported SNMP version: " + cfg.Version}
	}
	return &SNMPSource{client: client}, nil
}

// Connect opens the transport to the agent.
func (s *SNMPSource) Connect() error {
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("connect to %s: %w", s.client.Target, err)
	}
	return nil
}

// Close releases the transport.
func (s *SNMPSource) Close() error {
	if s.client.Conn != nil {
		return s.client.Conn.Close()
	}
	return nil
}

// Enumerate walks the agent's interface table and returns full descriptors
// with current HC octet counters.
func (s *SNMPSource) Enumerate() ([]Interface, error) {
	byIndex := make(map[uint32]*Interface)
	get := func(idx uint32) *Interface {
		if iface, ok := byIndex[idx]; ok {
			return iface
		}
		iface := &Interface{Index: idx}
		byIndex[idx] = iface
		return iface
	}

	walks := []struct {
		oid     string
		handler func(*Interface, string)
	}{
		{oidIfDescr, func(i *Interface, v string) { i.Description = v }},
		{oidIfType, func(i *Interface, v string) {
			t, _ := strconv.ParseUint(v, 10, 32)
			i.Type = uint32(t)
		}},
		{oidIfOperStatus, func(i *Interface, v string) { i.Operational = v == "1" }},
		{oidIfHCOutOctets, func(i *Interface, v string) {
			i.BytesSent, _ = strconv.ParseUint(v, 10, 64)
		}},
		{oidIfHCInOctets, func(i *Interface, v string) {
			i.BytesRecv, _ = strconv.ParseUint(v, 10, 64)
		}},
		{oidIfHighSpeed, func(i *Interface, v string) {
			mbps, _ := strconv.ParseUint(v, 10, 64)
			i.Speed = mbps * 1_000_000
		}},
	}
	for _, w := range walks {
		handler := w.handler
		if err := s.walk(w.oid, func(idx uint32, val string) {
			handler(get(idx), val)
		}); err != nil {
			return nil, fmt.Errorf("walk %s: %w", w.oid, err)
		}
	}

	out := make([]Interface, 0, len(byIndex))
	for _, iface := range byIndex {
		out = append(out, *iface)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// walk runs an SNMP walk on oid, extracting the ifIndex from the last OID
// component of each PDU.
func (s *SNMPSource) walk(oid string, handler func(uint32, string)) error {
	fn := func(pdu gosnmp.SnmpPDU) error {
		parts := strings.Split(pdu.Name, ".")
		if len(parts) == 0 {
			return nil
		}
		idx, err := strconv.ParseUint(parts[len(parts)-1], 10, 32)
		if err != nil {
			return nil
		}
		var val string
		switch pdu.Type {
		case gosnmp.OctetString:
			val = string(pdu.Value.([]byte))
		default:
			val = gosnmp.ToBigInt(pdu.Value).String()
		}
		handler(uint32(idx), val)
		return nil
	}
	if s.client.Version == gosnmp.Version1 {
		return s.client.Walk(oid, fn)
	}
	return s.client.BulkWalk(oid, fn)
}

func snmpv3MsgFlags(cfg SNMPConfig) gosnmp.SnmpV3MsgFlags {
	if cfg.PrivProto != "" && cfg.PrivPass != "" {
		return gosnmp.AuthPriv
	}
	if cfg.AuthProto != "" && cfg.AuthPass != "" {
		return gosnmp.AuthNoPriv
	}
	return gosnmp.NoAuthNoPriv
}

func snmpv3AuthProto(proto string) gosnmp.SnmpV3AuthProtocol {
	switch proto {
	case "MD5":
		return gosnmp.MD5
	case "SHA":
		return gosnmp.SHA
	case "SHA256":
		return gosnmp.SHA256
	case "SHA512":
		return gosnmp.SHA512
	default:
		return gosnmp.NoAuth
	}
}

func snmpv3PrivProto(proto string) gosnmp.SnmpV3PrivProtocol {
	switch proto {
	case "DES":
		return gosnmp.DES
	case "AES", "AES128":
		return gosnmp.AES
	case "AES192":
		return gosnmp.AES192
	case "AES256":
		return gosnmp.AES256
	default:
		return gosnmp.NoPriv
	}
}
