package discovery

import (
	"net"
	"testing"

	"github.com/miekg/dns"
)

func ptrRecord(name, target string) *dns.PTR {
	return &dns.PTR{
		Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 120},
		Ptr: target,
	}
}

func srvRecord(name, target string, port uint16) *dns.SRV {
	return &dns.SRV{
		Hdr:    dns.RR_Header{Name: name, Rrtype: dns.TypeSRV, Class: dns.ClassINET, Ttl: 120},
		Target: target,
		Port:   port,
	}
}

func aRecord(name, ip string) *dns.A {
	return &dns.A{
		Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 120},
		A:   net.ParseIP(ip).To4(),
	}
}

func response(answer, extra []dns.RR) *dns.Msg {
	msg := new(dns.Msg)
	msg.Response = true
	msg.Answer = answer
	msg.Extra = extra
	return msg
}

func TestRecordScanner_ServiceWithCompanionAddress(t *testing.T) {
	scanner := newRecordScanner("roku", false)

	msg := response(
		[]dns.RR{
			ptrRecord("_roku-rcp._tcp.local.", "Living Room._roku-rcp._tcp.local."),
		},
		[]dns.RR{
			srvRecord("Living Room._roku-rcp._tcp.local.", "roku-host.local.", 8060),
			aRecord("roku-host.local.", "192.168.1.34"),
		},
	)

	devices := scanner.scan(msg)
	if len(devices) != 1 {
		t.Fatalf("scan() returned %d descriptors, want 1", len(devices))
	}
	d := devices[0]
	if d.Address != "192.168.1.34" {
		t.Errorf("Address = %q, want 192.168.1.34", d.Address)
	}
	if d.DisplayName != "Living Room" {
		t.Errorf("DisplayName = %q, want %q", d.DisplayName, "Living Room")
	}
	if d.Port != 8060 {
		t.Errorf("Port = %d, want 8060", d.Port)
	}
}

func TestRecordScanner_ServiceWithoutAddressStaysPending(t *testing.T) {
	scanner := newRecordScanner("roku", false)

	// First response carries the service records but no address
	first := response(
		[]dns.RR{
			ptrRecord("_roku-rcp._tcp.local.", "Bedroom._roku-rcp._tcp.local."),
			srvRecord("Bedroom._roku-rcp._tcp.local.", "roku-bedroom.local.", 8060),
		},
		nil,
	)
	if devices := scanner.scan(first); len(devices) != 0 {
		t.Fatalf("scan() returned %d descriptors before any address arrived, want 0", len(devices))
	}

	// A later response supplies the companion address; session state
	// correlates it with the pending service name
	second := response([]dns.RR{aRecord("roku-bedroom.local.", "192.168.1.50")}, nil)
	devices := scanner.scan(second)
	if len(devices) != 1 {
		t.Fatalf("scan() returned %d descriptors after address arrived, want 1", len(devices))
	}
	if devices[0].Address != "192.168.1.50" || devices[0].DisplayName != "Bedroom" {
		t.Errorf("descriptor = %+v, want Bedroom at 192.168.1.50", devices[0])
	}
}

func TestRecordScanner_BareAddressHeuristic(t *testing.T) {
	msg := response([]dns.RR{aRecord("some-host.local.", "10.1.2.3")}, nil)

	accepting := newRecordScanner("roku", true)
	devices := accepting.scan(msg)
	if len(devices) != 1 {
		t.Fatalf("scan() with heuristic returned %d descriptors, want 1", len(devices))
	}
	if devices[0].Address != "10.1.2.3" {
		t.Errorf("Address = %q, want 10.1.2.3", devices[0].Address)
	}
	if devices[0].DisplayName != "some-host" {
		t.Errorf("DisplayName = %q, want %q", devices[0].DisplayName, "some-host")
	}

	strict := newRecordScanner("roku", false)
	if devices := strict.scan(msg); len(devices) != 0 {
		t.Fatalf("scan() without heuristic returned %d descriptors, want 0", len(devices))
	}
}

func TestRecordScanner_MarkerMatchesHostnameAddress(t *testing.T) {
	// A device hostname carrying the marker with its own address record is
	// a direct name/address correlation, no SRV involved
	scanner := newRecordScanner("roku", false)
	msg := response([]dns.RR{aRecord("Roku-Bedroom.local.", "192.168.1.77")}, nil)

	devices := scanner.scan(msg)
	if len(devices) != 1 {
		t.Fatalf("scan() returned %d descriptors, want 1", len(devices))
	}
	if devices[0].DisplayName != "Roku-Bedroom" {
		t.Errorf("DisplayName = %q, want Roku-Bedroom", devices[0].DisplayName)
	}
}

func TestRecordScanner_ServiceConfirmationSupersedesBare(t *testing.T) {
	// With the heuristic on, the same packet yields both a provisional
	// bare-address descriptor and a service-confirmed one; the confirmed
	// descriptor must come later so it wins the session map overwrite
	scanner := newRecordScanner("roku", true)
	msg := response(
		[]dns.RR{
			ptrRecord("_roku-rcp._tcp.local.", "Den._roku-rcp._tcp.local."),
		},
		[]dns.RR{
			srvRecord("Den._roku-rcp._tcp.local.", "roku-den.local.", 8060),
			aRecord("roku-den.local.", "192.168.1.90"),
		},
	)

	devices := scanner.scan(msg)
	if len(devices) != 2 {
		t.Fatalf("scan() returned %d descriptors, want 2 (bare + confirmed)", len(devices))
	}
	last := devices[len(devices)-1]
	if last.DisplayName != "Den" {
		t.Errorf("last descriptor DisplayName = %q, want the confirmed %q", last.DisplayName, "Den")
	}
}

func TestFirstLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"service instance", "Living Room._roku-rcp._tcp.local.", "Living Room"},
		{"hostname", "NP-2F08AA.local.", "NP-2F08AA"},
		{"escaped dot in instance", `Kids\. Room._roku-rcp._tcp.local.`, "Kids. Room"},
		{"empty", "", ""},
		{"root", ".", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstLabel(tt.in); got != tt.want {
				t.Errorf("firstLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
