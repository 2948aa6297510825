// Package netspeed measures host network throughput from per-interface byte
// counters.
//
// A Monitor samples cumulative sent/received counters across a filtered set
// of interfaces and derives upload/download rates, handling counter
// wraparound and too-frequent sampling. A Tracker retains a bounded history
// of readings for windowed average and peak queries. AsyncMonitor and
// AsyncTracker bridge the blocking engine to channel-based consumers.
//
// Counters come from a pluggable Source: the local system tables by default,
// with a /proc/net/dev fallback, or a remote device over SNMP.
package netspeed
