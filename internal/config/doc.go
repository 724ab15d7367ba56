// Package config manages persistent user configuration for the Roku remote
// toolkit.
//
// Configuration is stored as a YAML file in the platform-appropriate config
// directory (e.g. ~/.config/rokuremote/config.yaml on Linux). It holds:
//
//   - Server preferences: listen host/port, allowed CORS origins, whether to
//     advertise the server over mDNS.
//   - Discovery preferences: default timeout, maximum device count, and the
//     bare-address acceptance heuristic.
//   - Device metadata: user-assigned nicknames and last-seen timestamps,
//     keyed by device address.
//   - The last-controlled device address, used by the interactive remote to
//     reconnect on startup.
//
// The registry is loaded lazily and cached for the process lifetime. Saves
// are atomic (temp file + rename) and serialized with a mutex.
package config
