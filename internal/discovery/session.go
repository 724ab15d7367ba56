package discovery

import "sort"

// session is the device directory for a single discovery run: an in-memory
// mapping from device address to the last-seen descriptor. It is confined
// to one Discover call and never accessed concurrently.
type session struct {
	devices map[string]DeviceDescriptor
	max     int
}

func newSession(max int) *session {
	return &session{
		devices: make(map[string]DeviceDescriptor),
		max:     max,
	}
}

// add inserts or overwrites a descriptor keyed by address and reports
// whether the session has reached its device cap. Descriptors without an
// address are ignored.
func (s *session) add(d DeviceDescriptor) bool {
	if d.Address == "" {
		return s.full()
	}
	if s.full() {
		// Cap already reached; an existing entry may still be superseded
		if _, seen := s.devices[d.Address]; !seen {
			return true
		}
	}
	s.devices[d.Address] = d
	return s.full()
}

func (s *session) full() bool {
	return s.max > 0 && len(s.devices) >= s.max
}

// results returns the normalized descriptors collected so far, ordered by
// address for deterministic output.
func (s *session) results() []DeviceDescriptor {
	out := make([]DeviceDescriptor, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, d.normalized())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}
