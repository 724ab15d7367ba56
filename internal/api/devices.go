package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/muurk/rokuremote/internal/discovery"
	"github.com/muurk/rokuremote/internal/ecp"
)

// handleDiscover runs one bounded discovery session.
//
// Query parameters:
//   - timeout: discovery window in milliseconds (default from config)
//   - max: maximum device count (default from config)
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	opts := discovery.Options{
		Timeout:             s.config.DiscoveryTimeout,
		MaxDevices:          s.config.MaxDevices,
		AcceptBareAddresses: s.config.AcceptBareAddresses,
	}

	if raw := r.URL.Query().Get("timeout"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			writeValidationError(w, "timeout must be a positive number of milliseconds")
			return
		}
		opts.Timeout = time.Duration(ms) * time.Millisecond
	}
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeValidationError(w, "max must be a positive number")
			return
		}
		opts.MaxDevices = n
	}

	devices := s.discover(r.Context(), opts)
	writeSuccess(w, map[string]any{"devices": devices, "count": len(devices)})
}

// deviceClient builds the translator client for the address in the route.
func (s *Server) deviceClient(r *http.Request) *ecp.Client {
	return s.newDeviceClient(chi.URLParam(r, "addr"))
}

func (s *Server) newDeviceClient(address string) *ecp.Client {
	client := ecp.NewClient(address)
	if s.config.CommandTimeout > 0 {
		client.SetTimeout(s.config.CommandTimeout)
	}
	return client
}

// handleDeviceInfo returns the device identity record.
func (s *Server) handleDeviceInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.deviceClient(r).DeviceInfo(r.Context())
	if err != nil {
		writeDeviceError(w, err)
		return
	}
	writeSuccess(w, info)
}

// handleApps lists the channels installed on the device.
func (s *Server) handleApps(w http.ResponseWriter, r *http.Request) {
	apps, err := s.deviceClient(r).Apps(r.Context())
	if err != nil {
		writeDeviceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"apps": apps, "count": len(apps)})
}

// handleActiveApp returns the foreground app, or null when the home screen
// is active. The home screen is a valid state, not an error.
func (s *Server) handleActiveApp(w http.ResponseWriter, r *http.Request) {
	app, err := s.deviceClient(r).ActiveApp(r.Context())
	if err != nil {
		writeDeviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]any{"app": app}})
}

// handleMediaState returns playback state, or an unavailable record on
// devices without the capability. Never a failure envelope.
func (s *Server) handleMediaState(w http.ResponseWriter, r *http.Request) {
	state := s.deviceClient(r).MediaState(r.Context())
	writeSuccess(w, state)
}

type keypressRequest struct {
	Key string `json:"key"`
}

// handleKeypress sends a single remote key press.
func (s *Server) handleKeypress(w http.ResponseWriter, r *http.Request) {
	var req keypressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		writeValidationError(w, "key is required")
		return
	}
	if err := s.deviceClient(r).Keypress(r.Context(), req.Key); err != nil {
		writeDeviceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"ack": true})
}

type textRequest struct {
	Text string `json:"text"`
}

// handleText sends literal text input.
func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeValidationError(w, "text is required")
		return
	}
	if err := s.deviceClient(r).TypeText(r.Context(), req.Text); err != nil {
		writeDeviceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"ack": true})
}

type launchRequest struct {
	AppID string `json:"appId"`
}

// handleLaunch starts a channel by app id.
func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request) {
	var req launchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AppID == "" {
		writeValidationError(w, "appId is required")
		return
	}
	if err := s.deviceClient(r).Launch(r.Context(), req.AppID); err != nil {
		writeDeviceError(w, err)
		return
	}
	writeSuccess(w, map[string]any{"ack": true})
}
