package api

import (
	"encoding/json"
	"net/http"

	"github.com/muurk/rokuremote/internal/ecp"
)

// envelope is the uniform response shape for every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Best-effort write; the client may have gone away
	_ = json.NewEncoder(w).Encode(v)
}

// writeSuccess writes a success envelope.
func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// writeError writes a failure envelope with the given HTTP status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

// writeValidationError reports a missing or empty request field.
func writeValidationError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, message)
}

// writeDeviceError maps the translator's error taxonomy onto HTTP status
// codes: timeouts become 504, everything else a bad gateway.
func writeDeviceError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if kind, ok := ecp.KindOf(err); ok && kind == ecp.KindTimeout {
		status = http.StatusGatewayTimeout
	}
	writeError(w, status, err.Error())
}
