// Rokuremote-server is the HTTP backend for the browser-based Roku remote.
//
// It discovers Roku devices on the local network, translates the Roku
// External Control Protocol into a JSON API, and serves the embedded web
// remote so any browser on the LAN can drive a device.
//
// Usage:
//
//	rokuremote-server serve [flags]
//
// See 'rokuremote-server serve --help' for available options.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/rokuremote/internal/api"
	"github.com/muurk/rokuremote/internal/config"
	"github.com/muurk/rokuremote/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rokuremote-server",
	Short: "Roku Remote HTTP Server",
	Long: `The HTTP backend for the browser-based Roku remote.

Serves a JSON API for device discovery and control, streams the active-app
state over WebSockets, and hosts the embedded web remote.

Note: For command-line device control, use the separate 'rokuremote-ctl'
utility.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	host             string
	port             int
	logLevel         string
	corsOrigins      []string
	discoveryTimeout int
	maxDevices       int
	commandTimeout   int
	noBareAddresses  bool
	noAdvertise      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the remote control server",
	Long: `Start the Roku remote server.

Flags override values from the configuration registry; anything not set
on either falls back to built-in defaults. Discovery parameters set here
are the defaults for /devices/discover - individual requests can still
override them with query parameters.`,
	Example: `  # Start with defaults (port 8080)
  rokuremote-server serve

  # Custom port with debug logging
  rokuremote-server serve --port 9000 --log-level debug

  # Allow a hosted frontend origin
  rokuremote-server serve --cors-origin https://remote.example.com

  # Longer discovery window for sleepy devices
  rokuremote-server serve --discovery-timeout 8000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&host, "host", "", "Listen host (empty = all interfaces)")
	serveCmd.Flags().IntVar(&port, "port", 0, "Listen port (default 8080)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Allowed CORS origin pattern (repeatable, trailing * matches prefix)")
	serveCmd.Flags().IntVar(&discoveryTimeout, "discovery-timeout", 0, "Default discovery window in milliseconds")
	serveCmd.Flags().IntVar(&maxDevices, "max-devices", 0, "Default device cap per discovery session")
	serveCmd.Flags().IntVar(&commandTimeout, "command-timeout", 0, "Per-command device timeout in milliseconds")
	serveCmd.Flags().BoolVar(&noBareAddresses, "no-bare-addresses", false, "Disable the provisional bare-address discovery heuristic")
	serveCmd.Flags().BoolVar(&noAdvertise, "no-advertise", false, "Don't announce the server itself over mDNS")
}

func runServe(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	prefs := registry.Preferences

	cfg := &api.Config{
		Host:                host,
		Port:                port,
		LogLevel:            logLevel,
		AllowedOrigins:      corsOrigins,
		DiscoveryTimeout:    time.Duration(discoveryTimeout) * time.Millisecond,
		MaxDevices:          maxDevices,
		CommandTimeout:      time.Duration(commandTimeout) * time.Millisecond,
		AcceptBareAddresses: !noBareAddresses,
		Advertise:           !noAdvertise,
	}

	// Registry fills anything the flags left unset
	if prefs.Server != nil {
		if cfg.Host == "" {
			cfg.Host = prefs.Server.Host
		}
		if cfg.Port == 0 {
			cfg.Port = prefs.Server.Port
		}
		if len(cfg.AllowedOrigins) == 0 {
			cfg.AllowedOrigins = prefs.Server.AllowedOrigins
		}
		if !noAdvertise {
			cfg.Advertise = prefs.Server.Advertise
		}
	}
	if prefs.Discovery != nil {
		if cfg.DiscoveryTimeout == 0 {
			cfg.DiscoveryTimeout = time.Duration(prefs.Discovery.TimeoutMs) * time.Millisecond
		}
		if cfg.MaxDevices == 0 {
			cfg.MaxDevices = prefs.Discovery.MaxDevices
		}
		if !noBareAddresses {
			cfg.AcceptBareAddresses = prefs.Discovery.AcceptBareAddresses
		}
	}
	if cfg.CommandTimeout == 0 && prefs.CommandTimeoutMs > 0 {
		cfg.CommandTimeout = time.Duration(prefs.CommandTimeoutMs) * time.Millisecond
	}

	srv, err := api.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rokuremote-server %s (commit: %s)\n", version.Version, version.Commit)
	},
}
