package ecp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare host gets default port", "10.0.0.5", "10.0.0.5:8060"},
		{"explicit port passes through", "10.0.0.5:9000", "10.0.0.5:9000"},
		{"default port passes through", "10.0.0.5:8060", "10.0.0.5:8060"},
		{"hostname gets default port", "roku-den.local", "roku-den.local:8060"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAddress(tt.in); got != tt.want {
				t.Errorf("NormalizeAddress(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// deviceStub fakes a device's ECP endpoint and records what it received.
type deviceStub struct {
	server   *httptest.Server
	requests int64
	method   string
	uri      string
}

func newDeviceStub(t *testing.T, status int, body string) *deviceStub {
	t.Helper()
	stub := &deviceStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&stub.requests, 1)
		stub.method = r.Method
		stub.uri = r.RequestURI
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *deviceStub) address() string {
	return strings.TrimPrefix(s.server.URL, "http://")
}

func TestClient_Keypress(t *testing.T) {
	stub := newDeviceStub(t, http.StatusOK, "")
	client := NewClient(stub.address())

	if err := client.Keypress(context.Background(), "Home"); err != nil {
		t.Fatalf("Keypress() error: %v", err)
	}

	if n := atomic.LoadInt64(&stub.requests); n != 1 {
		t.Errorf("device received %d requests, want exactly 1", n)
	}
	if stub.method != http.MethodPost {
		t.Errorf("method = %s, want POST", stub.method)
	}
	if stub.uri != "/keypress/Home" {
		t.Errorf("request URI = %q, want /keypress/Home", stub.uri)
	}
}

func TestClient_TypeText(t *testing.T) {
	stub := newDeviceStub(t, http.StatusOK, "")
	client := NewClient(stub.address())

	if err := client.TypeText(context.Background(), "a b"); err != nil {
		t.Fatalf("TypeText() error: %v", err)
	}

	if !strings.Contains(stub.uri, "Lit_a%20b") {
		t.Errorf("request URI = %q, want the literal-input marker Lit_a%%20b", stub.uri)
	}
}

func TestClient_Launch(t *testing.T) {
	stub := newDeviceStub(t, http.StatusOK, "")
	client := NewClient(stub.address())

	if err := client.Launch(context.Background(), "12"); err != nil {
		t.Fatalf("Launch() error: %v", err)
	}
	if stub.uri != "/launch/12" {
		t.Errorf("request URI = %q, want /launch/12", stub.uri)
	}
}

func TestClient_Apps(t *testing.T) {
	const reply = `<?xml version="1.0" encoding="UTF-8" ?>
<apps>
	<app id="12" type="appl" version="4.1.218">Netflix</app>
	<app id="837" type="appl" version="1.0.80">YouTube</app>
	<app id="2213" type="appl" version="5.2.0">Roku Media Player</app>
</apps>`

	stub := newDeviceStub(t, http.StatusOK, reply)
	client := NewClient(stub.address())

	apps, err := client.Apps(context.Background())
	if err != nil {
		t.Fatalf("Apps() error: %v", err)
	}
	if len(apps) != 3 {
		t.Fatalf("Apps() returned %d apps, want 3", len(apps))
	}
	if apps[0].ID != "12" || apps[0].Name != "Netflix" || apps[0].Type != "appl" || apps[0].Version != "4.1.218" {
		t.Errorf("first app = %+v, want Netflix id=12 type=appl version=4.1.218", apps[0])
	}
	if stub.uri != "/query/apps" {
		t.Errorf("request URI = %q, want /query/apps", stub.uri)
	}
}

func TestClient_DeviceInfo(t *testing.T) {
	const reply = `<?xml version="1.0" encoding="UTF-8" ?>
<device-info>
	<udn>29600007-5406-1099-8080-b0a737226af1</udn>
	<serial-number>YH00AB123456</serial-number>
	<model-name>Roku Ultra</model-name>
	<model-number>4800X</model-number>
	<friendly-device-name>Living Room Roku</friendly-device-name>
	<software-version>12.5.0</software-version>
	<power-mode>PowerOn</power-mode>
	<is-tv>false</is-tv>
	<is-stick>false</is-stick>
</device-info>`

	stub := newDeviceStub(t, http.StatusOK, reply)
	client := NewClient(stub.address())

	info, err := client.DeviceInfo(context.Background())
	if err != nil {
		t.Fatalf("DeviceInfo() error: %v", err)
	}
	if info.FriendlyName != "Living Room Roku" {
		t.Errorf("FriendlyName = %q, want %q", info.FriendlyName, "Living Room Roku")
	}
	if info.ModelName != "Roku Ultra" || info.SerialNumber != "YH00AB123456" {
		t.Errorf("info = %+v, want Roku Ultra / YH00AB123456", info)
	}
	if info.IsTV {
		t.Error("IsTV = true, want false")
	}
}

func TestClient_ActiveApp(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		wantNil  bool
		wantID   string
		wantName string
	}{
		{
			name:     "app in foreground",
			reply:    `<active-app><app id="12" type="appl" version="4.1.218">Netflix</app></active-app>`,
			wantID:   "12",
			wantName: "Netflix",
		},
		{
			name:    "home screen reports app without id",
			reply:   `<active-app><app>Roku</app></active-app>`,
			wantNil: true,
		},
		{
			name:    "empty reply",
			reply:   `<active-app></active-app>`,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newDeviceStub(t, http.StatusOK, tt.reply)
			client := NewClient(stub.address())

			app, err := client.ActiveApp(context.Background())
			if err != nil {
				t.Fatalf("ActiveApp() error: %v", err)
			}
			if tt.wantNil {
				if app != nil {
					t.Fatalf("ActiveApp() = %+v, want nil (home screen)", app)
				}
				return
			}
			if app == nil {
				t.Fatal("ActiveApp() = nil, want an app record")
			}
			if app.ID != tt.wantID || app.Name != tt.wantName {
				t.Errorf("ActiveApp() = %+v, want id=%s name=%s", app, tt.wantID, tt.wantName)
			}
		})
	}
}

func TestClient_MediaState(t *testing.T) {
	t.Run("supported device", func(t *testing.T) {
		const reply = `<player state="play"><position>513 ms</position><duration>150000 ms</duration></player>`
		stub := newDeviceStub(t, http.StatusOK, reply)
		client := NewClient(stub.address())

		state := client.MediaState(context.Background())
		if !state.Available {
			t.Fatalf("MediaState() = %+v, want available", state)
		}
		if state.State != "play" || state.Position != "513 ms" {
			t.Errorf("MediaState() = %+v, want state=play position=513 ms", state)
		}
	})

	t.Run("unsupported device downgrades to unavailable", func(t *testing.T) {
		stub := newDeviceStub(t, http.StatusNotFound, "Not Found")
		client := NewClient(stub.address())

		state := client.MediaState(context.Background())
		if state.Available {
			t.Fatal("MediaState() available after 404, want unavailable")
		}
		if state.Error == "" {
			t.Error("MediaState() after 404 has empty Error, want a message")
		}
	})
}

func TestClient_ProtocolError(t *testing.T) {
	stub := newDeviceStub(t, http.StatusForbidden, "ECP command not allowed")
	client := NewClient(stub.address())

	err := client.Keypress(context.Background(), "Home")
	if err == nil {
		t.Fatal("Keypress() succeeded against a 403 reply")
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindProtocol {
		t.Errorf("error kind = %v (device error: %v), want KindProtocol", kind, ok)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	stub := newDeviceStub(t, http.StatusOK, "")
	address := stub.address()
	stub.server.Close() // nothing listens on the port anymore

	client := NewClient(address)
	err := client.Keypress(context.Background(), "Home")
	if err == nil {
		t.Fatal("Keypress() succeeded against a closed port")
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindUnreachable {
		t.Fatalf("error kind = %v (device error: %v), want KindUnreachable", kind, ok)
	}
	if !strings.Contains(err.Error(), address) {
		t.Errorf("error %q does not embed the device address %q", err.Error(), address)
	}
}

func TestClient_Timeout(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	t.Cleanup(stub.Close)

	client := NewClient(strings.TrimPrefix(stub.URL, "http://"))
	client.SetTimeout(50 * time.Millisecond)

	err := client.Keypress(context.Background(), "Home")
	if err == nil {
		t.Fatal("Keypress() succeeded despite the timeout")
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindTimeout {
		t.Errorf("error kind = %v (device error: %v), want KindTimeout", kind, ok)
	}
}
