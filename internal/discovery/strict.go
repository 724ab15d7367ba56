package discovery

import (
	"context"
	"fmt"

	"github.com/grandcat/zeroconf"
)

const (
	// strictService is the Roku DNS-SD service type browsed in strict mode
	strictService = "_roku-rcp._tcp"

	// strictDomain is the mDNS domain (typically "local.")
	strictDomain = "local."
)

// strictBrowser is the service-confirmed discovery backend, used when the
// bare-address heuristic is disabled. It only reports devices whose
// service advertisement resolved to an address.
type strictBrowser struct {
	service string
	domain  string
}

func newStrictBrowser() *strictBrowser {
	return &strictBrowser{service: strictService, domain: strictDomain}
}

func (b *strictBrowser) browse(ctx context.Context, found chan<- DeviceDescriptor) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for entry := range entries {
			d, ok := descriptorFromEntry(entry)
			if !ok {
				continue
			}
			select {
			case found <- d:
			case <-ctx.Done():
				// Drain so the resolver can close the channel
				for range entries {
				}
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, b.service, b.domain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-forwarded
	return nil
}

// descriptorFromEntry converts a resolved service entry to a descriptor.
// Entries without any address record are discarded silently.
func descriptorFromEntry(entry *zeroconf.ServiceEntry) (DeviceDescriptor, bool) {
	// Prefer IPv4
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return DeviceDescriptor{}, false
	}

	return DeviceDescriptor{
		Address:     ip,
		DisplayName: entry.Instance,
		Port:        entry.Port,
	}, true
}
