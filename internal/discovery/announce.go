package discovery

import (
	"fmt"

	"github.com/grandcat/zeroconf"
)

// Advertise announces the remote-control server itself over mDNS so UIs on
// the local network can locate it without configuration. The returned
// function withdraws the advertisement.
func Advertise(instance string, port int) (func(), error) {
	server, err := zeroconf.Register(instance, "_http._tcp", "local.", port,
		[]string{"path=/", "kind=rokuremote"}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	return server.Shutdown, nil
}
