package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/rokuremote/internal/logging"
)

const (
	// activeAppPollInterval is how often the device is polled for the
	// foreground app while a WebSocket client is connected.
	activeAppPollInterval = 5 * time.Second

	wsWriteTimeout = 10 * time.Second
)

// wsStateMessage is pushed to WebSocket clients whenever the device state
// is sampled. App is null when the home screen is active, Error is set when
// the sample failed (the stream keeps going - a flaky device shouldn't tear
// down the connection).
type wsStateMessage struct {
	Type  string `json:"type"`
	App   any    `json:"app"`
	Error string `json:"error,omitempty"`
}

// handleDeviceWS upgrades the connection and streams the device's
// foreground-app state until the client disconnects.
func (s *Server) handleDeviceWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || s.isAllowedOrigin(origin)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		logging.Debug("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	client := s.deviceClient(r)
	logging.Info("WebSocket state stream opened",
		zap.String("device", client.Address),
		zap.String("remote", r.RemoteAddr),
	)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Drain reads so pings and close frames are processed; any read error
	// means the client is gone
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.pushActiveApp(ctx, conn, client.Address); err != nil {
		return
	}

	ticker := time.NewTicker(activeAppPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Debug("WebSocket state stream closed", zap.String("device", client.Address))
			return
		case <-ticker.C:
			if err := s.pushActiveApp(ctx, conn, client.Address); err != nil {
				return
			}
		}
	}
}

// pushActiveApp samples the foreground app and writes one state message.
func (s *Server) pushActiveApp(ctx context.Context, conn *websocket.Conn, address string) error {
	client := s.newDeviceClient(address)
	msg := wsStateMessage{Type: "activeApp"}

	app, err := client.ActiveApp(ctx)
	if err != nil {
		msg.Error = err.Error()
	} else {
		msg.App = app
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(msg)
}
