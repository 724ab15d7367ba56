package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/rokuremote/internal/config"
	"github.com/muurk/rokuremote/internal/discovery"
	"github.com/muurk/rokuremote/internal/logging"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenDiscovery Screen = "discovery"
	ScreenRemote    Screen = "remote"
)

// Options configures the interactive remote.
type Options struct {
	// Device skips discovery and connects directly when set
	Device string

	ScanTimeout time.Duration
	MaxDevices  int
	AcceptBare  bool

	// CommandTimeout bounds each device command
	CommandTimeout time.Duration
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen Screen

	DiscoveryModel DiscoveryModel
	RemoteModel    RemoteModel

	// Shared application state
	SelectedDevice *discovery.DeviceDescriptor
	opts           Options

	// UI state
	Width  int
	Height int
}

// NewAppModel creates a new application model. When a device address is
// given the discovery screen is skipped.
func NewAppModel(opts Options) AppModel {
	model := AppModel{opts: opts}

	if opts.Device != "" {
		model.CurrentScreen = ScreenRemote
		model.SelectedDevice = &discovery.DeviceDescriptor{
			Address:     opts.Device,
			DisplayName: opts.Device,
		}
		model.RemoteModel = NewRemoteModel(opts.Device, opts.Device, opts.CommandTimeout)
		return model
	}

	model.CurrentScreen = ScreenDiscovery
	model.DiscoveryModel = NewDiscoveryModel(opts.ScanTimeout, opts.MaxDevices, opts.AcceptBare)
	return model
}

// Init initializes the starting screen
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.DiscoveryModel.Init()
	case ScreenRemote:
		return m.RemoteModel.Init()
	default:
		return nil
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.DiscoveryModel.Width = msg.Width
		m.DiscoveryModel.Height = msg.Height
		m.RemoteModel.Width = msg.Width
		m.RemoteModel.Height = msg.Height

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenDiscovery:
		updated, c := m.DiscoveryModel.Update(msg)
		m.DiscoveryModel = updated.(DiscoveryModel)
		cmd = c

		if m.DiscoveryModel.Selected {
			if device := m.DiscoveryModel.GetSelectedDevice(); device != nil {
				return m.connectTo(device)
			}
		}

		// Quit from discovery (normal mode only, not during scan or entry)
		if !m.DiscoveryModel.Scanning && !m.DiscoveryModel.ManualMode {
			if keyMsg, ok := msg.(tea.KeyMsg); ok {
				if keyMsg.String() == "q" || keyMsg.String() == "esc" {
					return m, tea.Quit
				}
			}
		}

	case ScreenRemote:
		updated, c := m.RemoteModel.Update(msg)
		m.RemoteModel = updated.(RemoteModel)
		cmd = c

		if m.RemoteModel.IsBackRequested() {
			// Direct-connect sessions have no discovery screen to return to
			if m.opts.Device != "" {
				return m, tea.Quit
			}
			m.CurrentScreen = ScreenDiscovery
			m.DiscoveryModel = NewDiscoveryModel(m.opts.ScanTimeout, m.opts.MaxDevices, m.opts.AcceptBare)
			m.DiscoveryModel.Width = m.Width
			m.DiscoveryModel.Height = m.Height
			return m, m.DiscoveryModel.Init()
		}
	}

	return m, cmd
}

// connectTo transitions from discovery to the remote screen and remembers
// the device for next time.
func (m AppModel) connectTo(device *discovery.DeviceDescriptor) (tea.Model, tea.Cmd) {
	m.SelectedDevice = device
	m.CurrentScreen = ScreenRemote

	rememberDevice(device)

	m.RemoteModel = NewRemoteModel(device.Address, device.DisplayName, m.opts.CommandTimeout)
	m.RemoteModel.Width = m.Width
	m.RemoteModel.Height = m.Height
	return m, m.RemoteModel.Init()
}

// rememberDevice persists the device in the registry so the next session
// can offer it without a scan. Persistence failures are not fatal.
func rememberDevice(device *discovery.DeviceDescriptor) {
	registry, err := config.LoadRegistry()
	if err != nil {
		logging.Debug("Failed to load registry", zap.Error(err))
		return
	}
	registry.EnsureDevice(device.Address)
	registry.UpdateDeviceLastSeen(device.Address)
	registry.SetLastDevice(device.Address)
	if err := config.SaveRegistry(registry); err != nil {
		logging.Debug("Failed to save registry", zap.Error(err))
	}
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenDiscovery:
		return m.DiscoveryModel.View()
	case ScreenRemote:
		return m.RemoteModel.View()
	default:
		return "Unknown screen"
	}
}

// Run starts the interactive remote and blocks until the user quits.
func Run(opts Options) error {
	program := tea.NewProgram(NewAppModel(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run interactive remote: %w", err)
	}
	return nil
}
