package ecp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "connection refused",
			err:  fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED),
			want: KindUnreachable,
		},
		{
			name: "context deadline",
			err:  context.DeadlineExceeded,
			want: KindTimeout,
		},
		{
			name: "dns failure",
			err:  &net.DNSError{Err: "no such host", Name: "roku-den.local", IsNotFound: true},
			want: KindTimeout,
		},
		{
			name: "unknown transport failure defaults to unreachable",
			err:  errors.New("wire fell out"),
			want: KindUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devErr := classify(tt.err, "192.168.1.34:8060")
			if devErr.Kind != tt.want {
				t.Errorf("classify() kind = %v, want %v", devErr.Kind, tt.want)
			}
			if devErr.Address != "192.168.1.34:8060" {
				t.Errorf("classify() address = %q, want the device address", devErr.Address)
			}
		})
	}
}

func TestDeviceError_MessageEmbedsAddress(t *testing.T) {
	err := classify(fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED), "10.0.0.9:8060")
	if !strings.Contains(err.Error(), "10.0.0.9:8060") {
		t.Errorf("error message %q does not embed the address", err.Error())
	}
}

func TestDeviceError_Unwrap(t *testing.T) {
	underlying := syscall.ECONNREFUSED
	err := classify(fmt.Errorf("dial tcp: %w", underlying), "10.0.0.9:8060")
	if !errors.Is(err, syscall.ECONNREFUSED) {
		t.Error("errors.Is() cannot see through DeviceError to the syscall error")
	}
}

func TestKindOf(t *testing.T) {
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf() claimed a plain error is a DeviceError")
	}

	wrapped := fmt.Errorf("command failed: %w", newProtocolError("10.0.0.9:8060", 500))
	kind, ok := KindOf(wrapped)
	if !ok || kind != KindProtocol {
		t.Errorf("KindOf(wrapped protocol error) = %v, %v; want KindProtocol, true", kind, ok)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnreachable, "device unreachable"},
		{KindTimeout, "device timeout"},
		{KindProtocol, "protocol error"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestIsKnownKey(t *testing.T) {
	if !IsKnownKey("Home") {
		t.Error("IsKnownKey(Home) = false")
	}
	if IsKnownKey("Teleport") {
		t.Error("IsKnownKey(Teleport) = true")
	}
}
