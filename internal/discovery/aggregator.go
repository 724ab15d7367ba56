package discovery

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/rokuremote/internal/logging"
)

const (
	// DefaultScanTimeout is the default timeout for device discovery
	DefaultScanTimeout = 3 * time.Second

	// DefaultMaxDevices is the default cap on discovered devices per session
	DefaultMaxDevices = 10
)

// Options configures a discovery session. Defaults are applied explicitly
// here rather than read from ambient process state so sessions stay
// testable in isolation.
type Options struct {
	// Timeout is the maximum time to listen for device advertisements
	Timeout time.Duration

	// MaxDevices stops the session early once this many distinct
	// addresses have been collected (0 = DefaultMaxDevices)
	MaxDevices int

	// AcceptBareAddresses accepts address records without explicit service
	// confirmation as provisional devices. This is a deliberate
	// false-positive-tolerant heuristic; turning it off switches to the
	// strict, service-confirmed resolver.
	AcceptBareAddresses bool
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultScanTimeout
	}
	if o.MaxDevices <= 0 {
		o.MaxDevices = DefaultMaxDevices
	}
	return o
}

// browser streams candidate descriptors from the network until ctx is done.
// Implementations must select against ctx when sending on found, and return
// a non-nil error only for listener-level failures that occur before the
// deadline.
type browser interface {
	browse(ctx context.Context, found chan<- DeviceDescriptor) error
}

// Discover runs one bounded discovery session and returns every device
// collected before the first of three terminating conditions: the deadline,
// the device-count cap, or a listener error. It never returns an error;
// on any failure the devices collected so far (possibly none) are returned.
func Discover(ctx context.Context, opts Options) []DeviceDescriptor {
	opts = opts.withDefaults()

	var b browser
	if opts.AcceptBareAddresses {
		b = newMDNSBrowser()
	} else {
		b = newStrictBrowser()
	}
	return collect(ctx, b, opts)
}

// collect drives the session loop over a browser. The deadline, cap, and
// error paths all release the listener through the shared cancel and each
// resolves the session exactly once.
func collect(ctx context.Context, b browser, opts Options) []DeviceDescriptor {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	found := make(chan DeviceDescriptor, 16)
	errc := make(chan error, 1)
	go func() {
		errc <- b.browse(ctx, found)
	}()

	start := time.Now()
	sess := newSession(opts.MaxDevices)
	for {
		select {
		case d := <-found:
			logging.LogDiscovery("candidate",
				zap.String("address", d.Address),
				zap.String("name", d.DisplayName),
			)
			if sess.add(d) {
				logging.LogDiscovery("cap_reached",
					zap.Int("devices", opts.MaxDevices),
					zap.Duration("elapsed", time.Since(start)),
				)
				return sess.results()
			}

		case err := <-errc:
			if err != nil {
				logging.Warn("Discovery listener failed, resolving with partial results",
					zap.Error(err),
					zap.Int("collected", len(sess.devices)),
				)
			}
			return sess.results()

		case <-ctx.Done():
			logging.LogDiscovery("deadline",
				zap.Int("collected", len(sess.devices)),
				zap.Duration("elapsed", time.Since(start)),
			)
			return sess.results()
		}
	}
}
