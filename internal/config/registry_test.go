package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRegistry_Defaults(t *testing.T) {
	r := NewRegistry()

	if r.Version != 1 {
		t.Errorf("Version = %d, want 1", r.Version)
	}
	if r.Devices == nil {
		t.Error("Devices map should be initialized")
	}
	if r.Preferences == nil || r.Preferences.Server == nil || r.Preferences.Discovery == nil {
		t.Fatal("nested preferences should be initialized")
	}
	if r.Preferences.Server.Port != DefaultServerPort {
		t.Errorf("server port = %d, want %d", r.Preferences.Server.Port, DefaultServerPort)
	}
	if !r.Preferences.Server.Advertise {
		t.Error("advertise should default to true")
	}
	if r.Preferences.Discovery.TimeoutMs != DefaultDiscoveryTimeout {
		t.Errorf("discovery timeout = %d, want %d", r.Preferences.Discovery.TimeoutMs, DefaultDiscoveryTimeout)
	}
	if r.Preferences.Discovery.MaxDevices != DefaultMaxDevices {
		t.Errorf("max devices = %d, want %d", r.Preferences.Discovery.MaxDevices, DefaultMaxDevices)
	}
	if !r.Preferences.Discovery.AcceptBareAddresses {
		t.Error("bare-address heuristic should default to on")
	}
	if r.Preferences.CommandTimeoutMs != DefaultCommandTimeout {
		t.Errorf("command timeout = %d, want %d", r.Preferences.CommandTimeoutMs, DefaultCommandTimeout)
	}
}

func TestLoadRegistryFromFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	r, err := LoadRegistryFromFile(path)
	if err != nil {
		t.Fatalf("LoadRegistryFromFile: %v", err)
	}
	if r.Version != 1 {
		t.Errorf("missing file should yield a default registry, got version %d", r.Version)
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	r := NewRegistry()
	r.SetNickname("192.168.1.34", "Living Room")
	r.SetLastDevice("192.168.1.34")
	r.Preferences.Server.Port = 9000

	if err := SaveRegistryToFile(r, path); err != nil {
		t.Fatalf("SaveRegistryToFile: %v", err)
	}

	loaded, err := LoadRegistryFromFile(path)
	if err != nil {
		t.Fatalf("LoadRegistryFromFile: %v", err)
	}

	device := loaded.GetDevice("192.168.1.34")
	if device == nil {
		t.Fatal("device entry should survive the roundtrip")
	}
	if device.Nickname != "Living Room" {
		t.Errorf("nickname = %q, want %q", device.Nickname, "Living Room")
	}
	if device.LastSeen.IsZero() {
		t.Error("last seen should be set")
	}
	if loaded.Preferences.LastDevice != "192.168.1.34" {
		t.Errorf("last device = %q, want 192.168.1.34", loaded.Preferences.LastDevice)
	}
	if loaded.Preferences.Server.Port != 9000 {
		t.Errorf("server port = %d, want 9000", loaded.Preferences.Server.Port)
	}
}

func TestLoadRegistryFromFile_UnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 99\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRegistryFromFile(path); err == nil {
		t.Error("expected error for unsupported config version")
	}
}

func TestLoadRegistryFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRegistryFromFile(path); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestLoadRegistryFromFile_FillsMissingPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := `version: 1
preferences:
  discovery:
    timeout_ms: 7000
`
	if err := os.WriteFile(path, []byte(partial), 0600); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRegistryFromFile(path)
	if err != nil {
		t.Fatalf("LoadRegistryFromFile: %v", err)
	}

	if r.Preferences.Discovery.TimeoutMs != 7000 {
		t.Errorf("timeout = %d, want the file's 7000", r.Preferences.Discovery.TimeoutMs)
	}
	if r.Preferences.Discovery.MaxDevices != DefaultMaxDevices {
		t.Errorf("max devices = %d, want default %d", r.Preferences.Discovery.MaxDevices, DefaultMaxDevices)
	}
	if r.Preferences.Server == nil {
		t.Fatal("server prefs should be filled with defaults")
	}
	if r.Preferences.Server.Port != DefaultServerPort {
		t.Errorf("server port = %d, want default %d", r.Preferences.Server.Port, DefaultServerPort)
	}
	if r.Preferences.CommandTimeoutMs != DefaultCommandTimeout {
		t.Errorf("command timeout = %d, want default %d", r.Preferences.CommandTimeoutMs, DefaultCommandTimeout)
	}
}

func TestEnsureDevice(t *testing.T) {
	r := &Registry{Version: 1}

	first := r.EnsureDevice("10.0.0.5")
	if first == nil {
		t.Fatal("EnsureDevice returned nil")
	}
	second := r.EnsureDevice("10.0.0.5")
	if first != second {
		t.Error("EnsureDevice should return the existing entry")
	}
	if len(r.Devices) != 1 {
		t.Errorf("device count = %d, want 1", len(r.Devices))
	}
}

func TestSetLastDevice_TouchesLastSeen(t *testing.T) {
	r := NewRegistry()
	r.SetLastDevice("10.0.0.5")

	device := r.GetDevice("10.0.0.5")
	if device == nil {
		t.Fatal("SetLastDevice should create the device entry")
	}
	if device.LastSeen.IsZero() {
		t.Error("SetLastDevice should update last seen")
	}
}
