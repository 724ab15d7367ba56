package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/rokuremote/internal/config"
	"github.com/muurk/rokuremote/internal/discovery"
	"github.com/muurk/rokuremote/internal/ecp"
	"github.com/muurk/rokuremote/internal/tui"
)

// Control command flags
var (
	deviceAddr   string
	scanTimeout  int
	outputFormat string
)

func init() {
	// Common flags for device commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&deviceAddr, "device", "", "Device address as host or host:port (skips discovery)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(activeCmd)
	rootCmd.AddCommand(mediaCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(remoteCmd)
}

// scanCmd discovers devices on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for Roku devices on the network",
	Long: `Scan for Roku devices using mDNS discovery.

The scan listens for service announcements and resolves their addresses.
On networks where multicast responses are filtered, host records matching
the Roku naming convention are accepted as provisional results.`,
	Example: `  # Scan with the default 3-second window
  rokuremote-ctl scan

  # Longer scan for networks with sleepy devices
  rokuremote-ctl scan --timeout 10`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 3, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	opts := discovery.Options{
		Timeout: time.Duration(scanTimeout) * time.Second,
	}
	if prefs := registry.Preferences.Discovery; prefs != nil {
		opts.MaxDevices = prefs.MaxDevices
		opts.AcceptBareAddresses = prefs.AcceptBareAddresses
	}

	fmt.Printf("Scanning for Roku devices (timeout: %ds)...\n\n", scanTimeout)

	devices := discovery.Discover(cmd.Context(), opts)

	if outputFormat == "json" {
		return printJSON(devices)
	}

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the Roku is powered on and awake")
		fmt.Println("  - Check that it's on the same network segment")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --device flag to specify an address manually")
		return nil
	}

	fmt.Printf("Found %d device(s):\n\n", len(devices))

	for i, device := range devices {
		fmt.Printf("%d. %s\n", i+1, device.DisplayName)
		fmt.Printf("   Address:  %s:%d\n", device.Address, device.Port)
		fmt.Printf("   Endpoint: %s\n", device.URL)
		fmt.Println()

		registry.EnsureDevice(device.Address)
		registry.UpdateDeviceLastSeen(device.Address)
	}

	if err := config.SaveRegistry(registry); err != nil {
		fmt.Printf("Warning: failed to save device registry: %v\n", err)
	}

	fmt.Println("Use 'rokuremote-ctl info --device <address>' to view device details")
	fmt.Println("Use 'rokuremote-ctl remote' for the interactive remote")

	return nil
}

// infoCmd displays the device identity record
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show device information",
	Long:  `Connect to a device and display its identity record: model, name, network details, and power state.`,
	Example: `  # Show info for the last used device
  rokuremote-ctl info

  # Show info for a specific device
  rokuremote-ctl info --device 192.168.1.34

  # JSON output for scripting
  rokuremote-ctl info --device 192.168.1.34 --format json`,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	client, err := deviceClient()
	if err != nil {
		return err
	}

	info, err := client.DeviceInfo(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get device info: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(info)
	}

	fmt.Printf("Device:     %s\n", displayName(info))
	fmt.Printf("Model:      %s (%s)\n", info.ModelName, info.ModelNumber)
	fmt.Printf("Serial:     %s\n", info.SerialNumber)
	fmt.Printf("Software:   %s\n", info.SoftwareVersion)
	fmt.Printf("Network:    %s\n", info.NetworkName)
	fmt.Printf("Power mode: %s\n", info.PowerMode)
	if info.IsTV {
		fmt.Println("Type:       Roku TV")
	}
	return nil
}

func displayName(info *ecp.DeviceInfo) string {
	if info.UserDeviceName != "" {
		return info.UserDeviceName
	}
	return info.FriendlyName
}

// appsCmd lists installed channels
var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List installed channels",
	Example: `  # List channels on the last used device
  rokuremote-ctl apps

  # JSON output
  rokuremote-ctl apps --format json`,
	RunE: runApps,
}

func runApps(cmd *cobra.Command, args []string) error {
	client, err := deviceClient()
	if err != nil {
		return err
	}

	apps, err := client.Apps(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list channels: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(apps)
	}

	fmt.Printf("%d channel(s) installed:\n\n", len(apps))
	for _, app := range apps {
		fmt.Printf("  %-8s %s\n", app.ID, app.Name)
	}
	return nil
}

// activeCmd shows the foreground app
var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the active channel",
	RunE:  runActive,
}

func runActive(cmd *cobra.Command, args []string) error {
	client, err := deviceClient()
	if err != nil {
		return err
	}

	app, err := client.ActiveApp(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get active channel: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(app)
	}

	if app == nil {
		fmt.Println("Home screen")
		return nil
	}
	fmt.Printf("%s (id %s)\n", app.Name, app.ID)
	return nil
}

// mediaCmd shows playback state
var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Show media playback state",
	RunE:  runMedia,
}

func runMedia(cmd *cobra.Command, args []string) error {
	client, err := deviceClient()
	if err != nil {
		return err
	}

	state := client.MediaState(cmd.Context())

	if outputFormat == "json" {
		return printJSON(state)
	}

	if !state.Available {
		fmt.Println("Media state not available on this device")
		return nil
	}
	fmt.Printf("State:    %s\n", state.State)
	if state.Position != "" {
		fmt.Printf("Position: %s / %s\n", state.Position, state.Duration)
	}
	return nil
}

// keyCmd sends a remote key press
var keyCmd = &cobra.Command{
	Use:   "key <name>",
	Short: "Send a remote key press",
	Long: `Send a single remote key press to the device.

Key names follow the Roku External Control Protocol: Home, Select, Up,
Down, Left, Right, Back, Play, Rev, Fwd, InstantReplay, Info, VolumeUp,
VolumeDown, VolumeMute, PowerOff, and others.`,
	Example: `  rokuremote-ctl key Home
  rokuremote-ctl key Select --device 192.168.1.34`,
	Args: cobra.ExactArgs(1),
	RunE: runKey,
}

func runKey(cmd *cobra.Command, args []string) error {
	client, err := deviceClient()
	if err != nil {
		return err
	}

	name := args[0]
	if !ecp.IsKnownKey(name) {
		fmt.Printf("Warning: %q is not a standard key name, sending anyway\n", name)
	}

	if err := client.Keypress(cmd.Context(), name); err != nil {
		return fmt.Errorf("failed to send key press: %w", err)
	}
	fmt.Printf("Sent %s\n", name)
	return nil
}

// textCmd sends literal text input
var textCmd = &cobra.Command{
	Use:   "text <string>",
	Short: "Type text into the device keyboard",
	Example: `  rokuremote-ctl text "stranger things"`,
	Args:  cobra.ExactArgs(1),
	RunE:  runText,
}

func runText(cmd *cobra.Command, args []string) error {
	client, err := deviceClient()
	if err != nil {
		return err
	}

	if err := client.TypeText(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to send text: %w", err)
	}
	fmt.Printf("Typed %q\n", args[0])
	return nil
}

// launchCmd starts a channel
var launchCmd = &cobra.Command{
	Use:   "launch <app-id>",
	Short: "Launch a channel by id",
	Long:  `Launch a channel by its numeric id. Use 'rokuremote-ctl apps' to list ids.`,
	Example: `  # Launch Netflix
  rokuremote-ctl launch 12`,
	Args: cobra.ExactArgs(1),
	RunE: runLaunch,
}

func runLaunch(cmd *cobra.Command, args []string) error {
	client, err := deviceClient()
	if err != nil {
		return err
	}

	if err := client.Launch(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to launch channel: %w", err)
	}
	fmt.Printf("Launched channel %s\n", args[0])
	return nil
}

// remoteCmd runs the interactive full-screen remote
var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Run the interactive remote",
	Long: `Run the full-screen interactive remote.

Without --device, a discovery screen lets you pick a device first. Arrow
keys navigate, enter selects, 't' opens the device keyboard, and 'a'
opens the channel launcher.`,
	RunE: runRemote,
}

func runRemote(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	opts := tui.Options{
		Device:         deviceAddr,
		ScanTimeout:    discovery.DefaultScanTimeout,
		MaxDevices:     discovery.DefaultMaxDevices,
		AcceptBare:     true,
		CommandTimeout: ecp.DefaultTimeout,
	}
	if prefs := registry.Preferences.Discovery; prefs != nil {
		if prefs.TimeoutMs > 0 {
			opts.ScanTimeout = time.Duration(prefs.TimeoutMs) * time.Millisecond
		}
		if prefs.MaxDevices > 0 {
			opts.MaxDevices = prefs.MaxDevices
		}
		opts.AcceptBare = prefs.AcceptBareAddresses
	}
	if registry.Preferences.CommandTimeoutMs > 0 {
		opts.CommandTimeout = time.Duration(registry.Preferences.CommandTimeoutMs) * time.Millisecond
	}

	return tui.Run(opts)
}

// deviceClient resolves the target device and builds a client for it.
// Resolution order: --device flag, then the registry's last used device.
func deviceClient() (*ecp.Client, error) {
	addr := deviceAddr
	if addr == "" {
		registry, err := config.LoadRegistry()
		if err == nil {
			addr = registry.Preferences.LastDevice
		}
	}
	if addr == "" {
		return nil, fmt.Errorf("no device specified: use --device or run 'rokuremote-ctl scan' first")
	}
	return ecp.NewClient(addr), nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
