package config

import "time"

// Registry represents the entire user configuration file.
// This stores server settings, discovery defaults, and user-defined
// metadata for known devices.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by device address
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single Roku device.
// This is keyed by the device's address in the Registry.
type Device struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery/command time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	Server    *ServerPrefs    `yaml:"server,omitempty"`
	Discovery *DiscoveryPrefs `yaml:"discovery,omitempty"`

	// CommandTimeoutMs is the per-request timeout for ECP commands
	CommandTimeoutMs int `yaml:"command_timeout_ms"`

	// LastDevice is the address of the last device the user controlled.
	// The interactive remote reconnects to it on startup.
	LastDevice string `yaml:"last_device,omitempty"`
}

// ServerPrefs represents HTTP server preferences.
type ServerPrefs struct {
	Host string `yaml:"host"` // Listen host (empty = all interfaces)
	Port int    `yaml:"port"` // Listen port

	// AllowedOrigins are CORS origin patterns. A pattern may end with "*"
	// to match any origin with that prefix (e.g. "http://localhost:*").
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`

	// Advertise announces the server itself via mDNS so UIs can find it
	Advertise bool `yaml:"advertise"`
}

// DiscoveryPrefs represents device discovery preferences.
type DiscoveryPrefs struct {
	TimeoutMs  int `yaml:"timeout_ms"`  // Default discovery window
	MaxDevices int `yaml:"max_devices"` // Stop listening once this many devices are found

	// AcceptBareAddresses accepts address records without service
	// confirmation as provisional devices. Deliberately false-positive
	// tolerant; disabling it changes observable discovery behaviour.
	AcceptBareAddresses bool `yaml:"accept_bare_addresses"`
}

// Defaults for preferences.
const (
	DefaultServerPort       = 8080
	DefaultDiscoveryTimeout = 3000
	DefaultMaxDevices       = 10
	DefaultCommandTimeout   = 5000
)

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			Server: &ServerPrefs{
				Host:           "",
				Port:           DefaultServerPort,
				AllowedOrigins: []string{"http://localhost:*"},
				Advertise:      true,
			},
			Discovery: &DiscoveryPrefs{
				TimeoutMs:           DefaultDiscoveryTimeout,
				MaxDevices:          DefaultMaxDevices,
				AcceptBareAddresses: true,
			},
			CommandTimeoutMs: DefaultCommandTimeout,
		},
	}
}

// GetDevice retrieves device metadata by address.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(address string) *Device {
	return r.Devices[address]
}

// EnsureDevice ensures a device entry exists in the registry.
// If the device doesn't exist, creates a new entry with default values.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(address string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[address]; exists {
		return device
	}

	device := &Device{}
	r.Devices[address] = device
	return device
}

// UpdateDeviceLastSeen updates the last seen timestamp for a device.
func (r *Registry) UpdateDeviceLastSeen(address string) {
	device := r.EnsureDevice(address)
	device.LastSeen = time.Now()
}

// SetNickname sets or updates the nickname for a device.
func (r *Registry) SetNickname(address, nickname string) {
	device := r.EnsureDevice(address)
	device.Nickname = nickname
}

// SetLastDevice records the address of the most recently controlled device.
func (r *Registry) SetLastDevice(address string) {
	if r.Preferences == nil {
		r.Preferences = NewRegistry().Preferences
	}
	r.Preferences.LastDevice = address
	r.UpdateDeviceLastSeen(address)
}
