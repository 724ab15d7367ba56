package ecp

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/muurk/rokuremote/internal/logging"
)

const (
	// DefaultPort is the well-known ECP control port
	DefaultPort = 8060

	// DefaultTimeout is the fixed per-request timeout. Every operation is
	// a single attempt; there are no retries.
	DefaultTimeout = 5 * time.Second

	// litPrefix marks a keypress as literal text input
	litPrefix = "Lit_"
)

// Client issues ECP requests against a single device.
type Client struct {
	// Address is the normalized device control address (host:port)
	Address string

	// BaseURL is the device's ECP base URL
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NormalizeAddress appends the well-known control port unless the address
// already carries one.
func NormalizeAddress(address string) string {
	if strings.Contains(address, ":") {
		return address
	}
	return fmt.Sprintf("%s:%d", address, DefaultPort)
}

// NewClient creates a client for the device at the given address.
// address: host or host:port (e.g. "192.168.1.34" or "192.168.1.34:8060")
func NewClient(address string) *Client {
	addr := NormalizeAddress(address)
	return &Client{
		Address:    addr,
		BaseURL:    "http://" + addr,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the per-request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// DeviceInfo queries the device identity record.
func (c *Client) DeviceInfo(ctx context.Context) (*DeviceInfo, error) {
	body, err := c.get(ctx, "/query/device-info")
	if err != nil {
		return nil, err
	}

	var info DeviceInfo
	if err := xml.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse device-info reply: %w", err)
	}
	return &info, nil
}

// Apps lists the channels installed on the device.
func (c *Client) Apps(ctx context.Context) ([]App, error) {
	body, err := c.get(ctx, "/query/apps")
	if err != nil {
		return nil, err
	}

	var list appList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse apps reply: %w", err)
	}
	return list.Apps, nil
}

// ActiveApp returns the app currently in the foreground. A nil result with
// a nil error means the home screen is active; that is a valid state, not
// a failure.
func (c *Client) ActiveApp(ctx context.Context) (*App, error) {
	body, err := c.get(ctx, "/query/active-app")
	if err != nil {
		return nil, err
	}

	var active activeApp
	if err := xml.Unmarshal(body, &active); err != nil {
		return nil, fmt.Errorf("failed to parse active-app reply: %w", err)
	}
	// The home screen reports an app element without an id
	if active.App == nil || active.App.ID == "" {
		return nil, nil
	}
	return active.App, nil
}

// MediaState queries playback state. The query is not supported by every
// device, so any failure is downgraded to an unavailable record instead of
// an error.
func (c *Client) MediaState(ctx context.Context) *MediaState {
	body, err := c.get(ctx, "/query/media-search")
	if err != nil {
		return &MediaState{Available: false, Error: err.Error()}
	}

	var player mediaPlayer
	if err := xml.Unmarshal(body, &player); err != nil {
		return &MediaState{Available: false, Error: fmt.Sprintf("failed to parse media reply: %v", err)}
	}
	return &MediaState{
		Available: true,
		State:     player.State,
		Position:  player.Position,
		Duration:  player.Duration,
	}
}

// Keypress sends a single remote key press (e.g. "Home", "Select").
func (c *Client) Keypress(ctx context.Context, key string) error {
	return c.post(ctx, "/keypress/"+url.PathEscape(key))
}

// TypeText sends text as a literal-input keypress. The text is URL-escaped
// and prefixed with the literal-input marker.
func (c *Client) TypeText(ctx context.Context, text string) error {
	return c.post(ctx, "/keypress/"+litPrefix+url.PathEscape(text))
}

// Launch starts the channel with the given app id.
func (c *Client) Launch(ctx context.Context, appID string) error {
	return c.post(ctx, "/launch/"+url.PathEscape(appID))
}

// get issues a single GET against the device and returns the reply body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	logging.LogDeviceRequest(c.Address, http.MethodGet, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, classify(err, c.Address)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newProtocolError(c.Address, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err, c.Address)
	}
	return body, nil
}

// post issues a single POST with an empty body against the device.
func (c *Client) post(ctx context.Context, path string) error {
	logging.LogDeviceRequest(c.Address, http.MethodPost, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return classify(err, c.Address)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return newProtocolError(c.Address, resp.StatusCode)
	}

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
