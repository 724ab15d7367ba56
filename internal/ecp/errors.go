package ecp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// Kind categorizes device communication failures.
type Kind int

const (
	// KindUnreachable indicates the device refused the connection
	KindUnreachable Kind = iota
	// KindTimeout indicates no response within the deadline or a name
	// resolution failure
	KindTimeout
	// KindProtocol indicates the device answered with a non-success status
	KindProtocol
)

// String returns a human-readable name for the error kind
func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "device unreachable"
	case KindTimeout:
		return "device timeout"
	case KindProtocol:
		return "protocol error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// DeviceError represents a failed ECP operation against a device.
type DeviceError struct {
	Kind    Kind   // Category of failure
	Address string // Device control address (host:port)
	Status  int    // HTTP status code (protocol errors only)
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	switch e.Kind {
	case KindProtocol:
		return fmt.Sprintf("%s: device %s answered status %d", e.Kind, e.Address, e.Status)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Address, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Address)
	}
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// newProtocolError builds the error for a non-success device status.
func newProtocolError(address string, status int) *DeviceError {
	return &DeviceError{Kind: KindProtocol, Address: address, Status: status}
}

// classify maps a transport-level error to the device error taxonomy:
// connection refused is unreachable; timeouts and name resolution failures
// are timeouts. Anything else counts as unreachable.
func classify(err error, address string) *DeviceError {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &DeviceError{Kind: KindTimeout, Address: address, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &DeviceError{Kind: KindTimeout, Address: address, Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &DeviceError{Kind: KindTimeout, Address: address, Err: err}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &DeviceError{Kind: KindUnreachable, Address: address, Err: err}
	}

	return &DeviceError{Kind: KindUnreachable, Address: address, Err: err}
}

// KindOf extracts the failure kind from an error chain. The second return
// is false when the error is not a DeviceError.
func KindOf(err error) (Kind, bool) {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Kind, true
	}
	return 0, false
}
