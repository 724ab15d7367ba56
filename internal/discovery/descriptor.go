package discovery

import "fmt"

const (
	// DefaultPort is the well-known ECP control port on Roku devices
	DefaultPort = 8060

	// DeviceKind identifies the device class in a descriptor
	DeviceKind = "roku"

	// UnknownDeviceName is the display name used when discovery could not
	// resolve a friendly name for a device
	UnknownDeviceName = "Unknown Roku Device"
)

// DeviceDescriptor is the normalized public representation of a discovered
// device. Identity key is Address; within a discovery session a later
// observation for the same address supersedes the earlier one.
type DeviceDescriptor struct {
	// Address is the device host (e.g. "192.168.1.34")
	Address string `json:"address"`

	// DisplayName is the advertised friendly name, or UnknownDeviceName
	DisplayName string `json:"displayName"`

	// Port is the ECP control port (typically 8060)
	Port int `json:"port"`

	// Kind is the device class constant ("roku")
	Kind string `json:"kind"`

	// URL is the ECP base URL for the device
	URL string `json:"url"`
}

// String returns a human-readable string representation of the descriptor
func (d DeviceDescriptor) String() string {
	return fmt.Sprintf("%s (%s) at %s:%d", d.DisplayName, d.Kind, d.Address, d.Port)
}

// normalized fills in defaults and the derived URL field.
func (d DeviceDescriptor) normalized() DeviceDescriptor {
	if d.DisplayName == "" {
		d.DisplayName = UnknownDeviceName
	}
	if d.Port == 0 {
		d.Port = DefaultPort
	}
	d.Kind = DeviceKind
	d.URL = fmt.Sprintf("http://%s:%d", d.Address, d.Port)
	return d
}
