package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/rokuremote/internal/discovery"
	"github.com/muurk/rokuremote/internal/logging"
	"github.com/muurk/rokuremote/internal/version"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Config holds the server configuration
type Config struct {
	Host string // Listen host (empty = all interfaces)
	Port int    // Listen port

	// AllowedOrigins are CORS origin patterns; a trailing "*" matches any
	// origin with that prefix
	AllowedOrigins []string

	// DiscoveryTimeout is the default discovery window when the request
	// doesn't specify one
	DiscoveryTimeout time.Duration

	// MaxDevices caps the number of devices per discovery session
	MaxDevices int

	// AcceptBareAddresses enables the provisional-address discovery
	// heuristic
	AcceptBareAddresses bool

	// CommandTimeout is the per-request timeout for ECP commands
	CommandTimeout time.Duration

	// Advertise announces the server itself over mDNS
	Advertise bool

	LogLevel string
}

// discoverFunc runs one discovery session. Injected so tests can stub the
// network scan.
type discoverFunc func(ctx context.Context, opts discovery.Options) []discovery.DeviceDescriptor

// Server is the HTTP command router: it exposes discovery and the ECP
// translator operations as request/response endpoints. Pure dispatch - all
// device logic lives in the ecp and discovery packages.
type Server struct {
	config        *Config
	httpServer    *http.Server
	discover      discoverFunc
	stopAdvertise func()
}

// New creates a new Server instance
func New(config *Config) (*Server, error) {
	// Initialize logging
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	if config.Port == 0 {
		config.Port = 8080
	}
	if config.DiscoveryTimeout <= 0 {
		config.DiscoveryTimeout = discovery.DefaultScanTimeout
	}
	if config.MaxDevices <= 0 {
		config.MaxDevices = discovery.DefaultMaxDevices
	}

	return &Server{
		config:   config,
		discover: discovery.Discover,
	}, nil
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.buildRouter(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logging.Info("Starting Roku remote server",
		zap.String("addr", addr),
		zap.String("version", version.Version),
		zap.Duration("discovery_timeout", s.config.DiscoveryTimeout),
		zap.Int("max_devices", s.config.MaxDevices),
		zap.Bool("bare_address_heuristic", s.config.AcceptBareAddresses),
	)

	if s.config.Advertise {
		stop, err := discovery.Advertise("rokuremote", s.config.Port)
		if err != nil {
			logging.Warn("Failed to advertise server over mDNS", zap.Error(err))
		} else {
			s.stopAdvertise = stop
			logging.Info("Advertising server over mDNS", zap.Int("port", s.config.Port))
		}
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if s.stopAdvertise != nil {
		s.stopAdvertise()
		s.stopAdvertise = nil
	}

	ctx, cancel := context.WithTimeout(ctx, gracefulShutdownTimeout)
	defer cancel()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	logging.Sync()
	return err
}
