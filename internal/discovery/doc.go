// Package discovery locates Roku devices on the local network.
//
// A discovery session is one bounded call to Discover: it broadcasts mDNS
// queries for the Roku advertisement service names, collects replies into
// an in-memory directory keyed by device address, and resolves on the
// first of three terminating conditions:
//
//  1. the configured deadline elapses,
//  2. the device-count cap is reached (the session resolves immediately,
//     without waiting for the deadline), or
//  3. the listener fails (the session resolves with whatever was
//     collected; discovery never returns an error).
//
// Within a session each address appears at most once in the result; later
// observations overwrite earlier ones.
//
// # Backends
//
// The default backend speaks mDNS directly (miekg/dns over multicast UDP)
// and scans raw answer and additional records. Records whose name carries
// the Roku service marker are correlated with a companion address record
// sharing the same name, from the same response or from state accumulated
// earlier in the session. Independently, every bare address record is
// accepted as a provisional device - a deliberate false-positive-tolerant
// heuristic, since some firmware replies with address records only.
//
// Setting Options.AcceptBareAddresses to false switches to the strict
// backend (grandcat/zeroconf), which reports only service-confirmed
// entries. Both backends feed the same session loop, so the cap, dedup,
// and deadline semantics are identical.
//
// # Normalization
//
// Every returned descriptor has a display name (fallback "Unknown Roku
// Device"), a port (fallback 8060), the kind constant "roku", and the
// derived ECP base URL.
//
// # Network Requirements
//
//   - Multicast support on the network interface
//   - Devices on the same local network segment
//   - Firewall allowing mDNS (UDP port 5353)
package discovery
