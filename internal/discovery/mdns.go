package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/miekg/dns"
	"go.uber.org/zap"

	"github.com/muurk/rokuremote/internal/logging"
)

const (
	// mdnsGroupAddr is the IPv4 mDNS multicast group
	mdnsGroupAddr = "224.0.0.251:5353"

	// serviceMarker identifies Roku advertisement records by name
	serviceMarker = "roku"

	// maxPacketSize is the receive buffer size for mDNS responses
	maxPacketSize = 65536
)

// serviceNames are the advertisement service names queried during
// discovery. The broad _http._tcp query widens the response stream for the
// bare-address heuristic.
var serviceNames = []string{
	"_roku-rcp._tcp.local.",
	"_http._tcp.local.",
}

// mdnsBrowser is the heuristic discovery backend. It speaks mDNS directly
// so it can scan raw answer/additional records and accept bare address
// records as provisional devices.
type mdnsBrowser struct {
	queries []string
	marker  string
}

func newMDNSBrowser() *mdnsBrowser {
	return &mdnsBrowser{queries: serviceNames, marker: serviceMarker}
}

// browse opens the multicast listener, broadcasts the service queries, and
// streams candidate descriptors until ctx is done. The sockets are closed
// exactly once whether the session ends by deadline, cap, or error.
func (b *mdnsBrowser) browse(ctx context.Context, found chan<- DeviceDescriptor) error {
	group, err := net.ResolveUDPAddr("udp4", mdnsGroupAddr)
	if err != nil {
		return fmt.Errorf("resolve mdns group: %w", err)
	}

	// Queries go out from an ephemeral port; responders reply to it
	// directly (legacy unicast responses)
	uconn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return fmt.Errorf("open mdns socket: %w", err)
	}

	// Group-addressed responses arrive on the multicast socket. Unicast
	// replies alone still work, so a failure here is not fatal.
	mconn, err := net.ListenMulticastUDP("udp4", nil, group)
	if err != nil {
		logging.Warn("Multicast listen failed, relying on unicast replies only", zap.Error(err))
		mconn = nil
	}

	conns := []*net.UDPConn{uconn}
	if mconn != nil {
		conns = append(conns, mconn)
	}

	var closeOnce sync.Once
	closeAll := func() {
		closeOnce.Do(func() {
			for _, c := range conns {
				_ = c.Close()
			}
		})
	}
	defer closeAll()

	// Unblock the readers when the session ends
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		closeAll()
	}()

	if err := b.sendQueries(uconn, group); err != nil {
		return err
	}

	type packet struct {
		data []byte
		err  error
	}
	packets := make(chan packet, 8)
	var wg sync.WaitGroup
	for _, c := range conns {
		wg.Add(1)
		go func(c *net.UDPConn) {
			defer wg.Done()
			buf := make([]byte, maxPacketSize)
			for {
				n, _, err := c.ReadFromUDP(buf)
				if err != nil {
					if ctx.Err() == nil {
						select {
						case packets <- packet{err: err}:
						default:
						}
					}
					return
				}
				data := make([]byte, n)
				copy(data, buf[:n])
				select {
				case packets <- packet{data: data}:
				case <-ctx.Done():
					return
				}
			}
		}(c)
	}
	go func() {
		wg.Wait()
		close(packets)
	}()

	scanner := newRecordScanner(b.marker, true)
	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-packets:
			if !ok {
				return nil
			}
			if p.err != nil {
				return fmt.Errorf("mdns read: %w", p.err)
			}
			msg := new(dns.Msg)
			if err := msg.Unpack(p.data); err != nil {
				// Garbage on the multicast group is routine; skip it
				continue
			}
			if !msg.Response {
				continue
			}
			for _, d := range scanner.scan(msg) {
				select {
				case found <- d:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}

// sendQueries broadcasts one PTR query per advertised service name.
func (b *mdnsBrowser) sendQueries(conn *net.UDPConn, group *net.UDPAddr) error {
	m := new(dns.Msg)
	m.Question = make([]dns.Question, 0, len(b.queries))
	for _, name := range b.queries {
		m.Question = append(m.Question, dns.Question{
			Name:   name,
			Qtype:  dns.TypePTR,
			Qclass: dns.ClassINET,
		})
	}
	m.RecursionDesired = false

	buf, err := m.Pack()
	if err != nil {
		return fmt.Errorf("pack mdns query: %w", err)
	}
	if _, err := conn.WriteToUDP(buf, group); err != nil {
		return fmt.Errorf("send mdns query: %w", err)
	}
	return nil
}
