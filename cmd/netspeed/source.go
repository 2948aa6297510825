package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	netspeed "github.com/justrawaccel/network-speed"
)

// sourceFlags holds the flags selecting where counters come from: the local
// host by default, or a remote SNMP agent.
type sourceFlags struct {
	host      *string
	port      *uint
	version   *string
	community *string
	username  *string
	authProto *string
	authPass  *string
	privProto *string
	privPass  *string
	timeout   *time.Duration
}

func addSourceFlags(fs *flag.FlagSet) *sourceFlags {
	return &sourceFlags{
		host:      fs.String("snmp", "", "SNMP agent host; empty measures the local host"),
		port:      fs.Uint("snmp-port", 161, "SNMP agent port"),
		version:   fs.String("snmp-version", "2c", "SNMP version (1, 2c, 3)"),
		community: fs.String("community", "", "SNMP community (v1/v2c); prompted when omitted"),
		username:  fs.String("snmp-user", "", "SNMPv3 user name"),
		authProto: fs.String("snmp-auth-proto", "", "SNMPv3 auth protocol (MD5, SHA, SHA256, SHA512)"),
		authPass:  fs.String("snmp-auth-pass", "", "SNMPv3 auth passphrase"),
		privProto: fs.String("snmp-priv-proto", "", "SNMPv3 privacy protocol (DES, AES, AES192, AES256)"),
		privPass:  fs.String("snmp-priv-pass", "", "SNMPv3 privacy passphrase"),
		timeout:   fs.Duration("snmp-timeout", 5*time.Second, "SNMP request timeout"),
	}
}

// build returns the selected source, a cleanup function, and a short label
// for display.
func (f *sourceFlags) build() (netspeed.Source, func(), string, error) {
	if *f.host == "" {
		return netspeed.DefaultSource(), func() {}, "local host", nil
	}

	if *f.community == "" && *f.version != "3" {
		fmt.Fprintf(os.Stderr, "SNMP community for %s: ", *f.host)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, nil, "", fmt.Errorf("reading community: %w", err)
		}
		// Remember the answer so a second build does not prompt again.
		*f.community = string(raw)
	}

	src, err := netspeed.NewSNMPSource(netspeed.SNMPConfig{
		Host:      *f.host,
		Port:      uint16(*f.port),
		Version:   *f.version,
		Community: *f.community,
		Username:  *f.username,
		AuthProto: *f.authProto,
		AuthPass:  *f.authPass,
		PrivProto: *f.privProto,
		PrivPass:  *f.privPass,
		Timeout:   *f.timeout,
	})
	if err != nil {
		return nil, nil, "", err
	}
	if err := src.Connect(); err != nil {
		return nil, nil, "", err
	}
	cleanup := func() { src.Close() }
	return src, cleanup, *f.host, nil
}
