package discovery

import (
	"strings"

	"github.com/miekg/dns"
)

// recordScanner turns raw mDNS answer/additional records into candidate
// descriptors. State accumulates across packets within one session so a
// service record in one response can be correlated with an address record
// that arrived in another.
type recordScanner struct {
	marker     string
	acceptBare bool

	// addrsByName maps a record name (hostname) to its address
	addrsByName map[string]string

	// srvTargets / srvPorts index SRV records by service instance name
	srvTargets map[string]string
	srvPorts   map[string]int

	// hosts are names known to play the host role (SRV targets); they
	// carry address records for a service instance, not a service of
	// their own
	hosts map[string]bool

	// pending holds service-marked names still awaiting an address record
	pending map[string]string
}

func newRecordScanner(marker string, acceptBare bool) *recordScanner {
	return &recordScanner{
		marker:      strings.ToLower(marker),
		acceptBare:  acceptBare,
		addrsByName: make(map[string]string),
		srvTargets:  make(map[string]string),
		srvPorts:    make(map[string]int),
		hosts:       make(map[string]bool),
		pending:     make(map[string]string),
	}
}

// scan processes one response message and returns the candidate descriptors
// it yields. Bare address candidates come first so a service-confirmed
// descriptor for the same address supersedes them in the session map.
func (s *recordScanner) scan(msg *dns.Msg) []DeviceDescriptor {
	records := make([]dns.RR, 0, len(msg.Answer)+len(msg.Extra))
	records = append(records, msg.Answer...)
	records = append(records, msg.Extra...)

	var bare []DeviceDescriptor

	// First pass: harvest address and SRV records
	for _, rr := range records {
		name := rr.Header().Name
		switch rec := rr.(type) {
		case *dns.A:
			s.addrsByName[name] = rec.A.String()
			if s.acceptBare {
				bare = append(bare, DeviceDescriptor{
					Address:     rec.A.String(),
					DisplayName: firstLabel(name),
				})
			}
		case *dns.AAAA:
			s.addrsByName[name] = rec.AAAA.String()
			if s.acceptBare {
				bare = append(bare, DeviceDescriptor{
					Address:     rec.AAAA.String(),
					DisplayName: firstLabel(name),
				})
			}
		case *dns.SRV:
			s.srvTargets[name] = rec.Target
			s.srvPorts[name] = int(rec.Port)
			s.hosts[rec.Target] = true
		}
	}

	// Second pass: mark records whose name carries the device service marker
	for _, rr := range records {
		if ptr, ok := rr.(*dns.PTR); ok && s.matches(ptr.Ptr) {
			s.pending[ptr.Ptr] = firstLabel(ptr.Ptr)
		}
		if name := rr.Header().Name; s.matches(name) && !s.hosts[name] {
			if _, ok := s.pending[name]; !ok {
				s.pending[name] = firstLabel(name)
			}
		}
	}

	// Correlate pending service names with companion address records from
	// this packet or accumulated session state. Names that still have no
	// address stay pending; they are never reported on their own.
	var confirmed []DeviceDescriptor
	for name, label := range s.pending {
		d, ok := s.resolve(name, label)
		if !ok {
			continue
		}
		confirmed = append(confirmed, d)
		delete(s.pending, name)
	}

	return append(bare, confirmed...)
}

func (s *recordScanner) matches(name string) bool {
	return strings.Contains(strings.ToLower(name), s.marker)
}

func (s *recordScanner) resolve(name, label string) (DeviceDescriptor, bool) {
	// Companion address record sharing the same name
	if ip, ok := s.addrsByName[name]; ok {
		return DeviceDescriptor{Address: ip, DisplayName: label, Port: s.srvPorts[name]}, true
	}
	// Indirect: SRV record points at the host carrying the address
	if target, ok := s.srvTargets[name]; ok {
		if ip, ok := s.addrsByName[target]; ok {
			return DeviceDescriptor{Address: ip, DisplayName: label, Port: s.srvPorts[name]}, true
		}
	}
	return DeviceDescriptor{}, false
}

// firstLabel extracts the leading label of a DNS name, which for service
// instances is the advertised friendly name (e.g. "Living Room" from
// "Living Room._roku-rcp._tcp.local.").
func firstLabel(name string) string {
	labels := dns.SplitDomainName(name)
	if len(labels) == 0 {
		return ""
	}
	return strings.ReplaceAll(labels[0], `\.`, ".")
}
