package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/rokuremote/internal/discovery"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	devices []discovery.DeviceDescriptor
}

// discoveryKeyMap defines key bindings for the discovery screen
type discoveryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Rescan key.Binding
	Manual key.Binding
	Quit   key.Binding
}

func (k discoveryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Rescan, k.Manual, k.Quit}
}

func (k discoveryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Rescan, k.Manual, k.Quit},
	}
}

// manualModeKeyMap defines key bindings for manual address entry mode
type manualModeKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func (m manualModeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Confirm, m.Cancel}
}

func (m manualModeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Confirm, m.Cancel},
	}
}

// deviceItem wraps a DeviceDescriptor for use with bubbles/list
type deviceItem struct {
	device discovery.DeviceDescriptor
}

func (d deviceItem) FilterValue() string {
	return d.device.DisplayName + " " + d.device.Address
}

func (d deviceItem) Title() string       { return d.device.DisplayName }
func (d deviceItem) Description() string { return d.device.Address }

// deviceDelegate renders device cards in the discovery list
type deviceDelegate struct {
	width int
}

func (d deviceDelegate) Height() int                               { return 5 }
func (d deviceDelegate) Spacing() int                              { return 1 }
func (d deviceDelegate) Update(tea.Msg, *list.Model) tea.Cmd       { return nil }

func (d deviceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	di, ok := item.(deviceItem)
	if !ok {
		return
	}

	selected := index == m.Index()

	var content strings.Builder
	if selected {
		content.WriteString(SelectedMenuItemStyle.Render("→ " + di.device.DisplayName))
	} else {
		content.WriteString("  " + di.device.DisplayName)
	}
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("  Address:  %s:%d\n", di.device.Address, di.device.Port))
	content.WriteString(fmt.Sprintf("  Endpoint: %s", di.device.URL))

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 2).
		MarginLeft(2)

	cardWidth := d.width - 6
	if cardWidth < MinTerminalWidth-6 {
		cardWidth = MinTerminalWidth - 6
	}
	if cardWidth > MaxContentWidth-6 {
		cardWidth = MaxContentWidth - 6
	}
	cardStyle = cardStyle.Width(cardWidth)

	if selected {
		cardStyle = cardStyle.BorderForeground(HighlightColor)
	}

	fmt.Fprint(w, cardStyle.Render(content.String()))
}

// DiscoveryModel represents the device discovery screen state
type DiscoveryModel struct {
	Scanning   bool
	DeviceList list.Model
	Selected   bool

	// Manual address entry state
	ManualMode bool
	AddrInput  textinput.Model

	// Scan parameters
	ScanTimeout time.Duration
	MaxDevices  int
	AcceptBare  bool

	// UI state
	Width         int
	Height        int
	Spinner       spinner.Model
	ScanStartTime time.Time
	Help          help.Model
	Keys          discoveryKeyMap
	ManualKeys    manualModeKeyMap
}

// NewDiscoveryModel creates a new discovery screen model
func NewDiscoveryModel(timeout time.Duration, maxDevices int, acceptBare bool) DiscoveryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	addrInput := textinput.New()
	addrInput.Placeholder = "192.168.1.34"
	addrInput.CharLimit = 45
	addrInput.Width = 30

	delegate := deviceDelegate{width: MinTerminalWidth}
	deviceList := list.New([]list.Item{}, delegate, 0, 0)
	deviceList.Title = "Discovered Devices"
	deviceList.SetShowStatusBar(false)
	deviceList.SetFilteringEnabled(true)
	deviceList.Styles.Title = TitleStyle

	keys := discoveryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "connect"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Manual: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual address"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	manualKeys := manualModeKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}

	return DiscoveryModel{
		DeviceList:  deviceList,
		AddrInput:   addrInput,
		ScanTimeout: timeout,
		MaxDevices:  maxDevices,
		AcceptBare:  acceptBare,
		Spinner:     s,
		Help:        help.New(),
		Keys:        keys,
		ManualKeys:  manualKeys,
	}
}

// Init starts scanning immediately
func (m DiscoveryModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		m.scanDevices(),
		m.Spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m DiscoveryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.ManualMode {
			return m.updateManualMode(msg)
		}
		return m.updateNormalMode(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.DeviceList.SetWidth(msg.Width - 4)
		m.DeviceList.SetHeight(msg.Height - 10)

	case scanStartMsg:
		m.Scanning = true
		m.ScanStartTime = time.Now()

	case scanCompleteMsg:
		m.Scanning = false
		items := make([]list.Item, len(msg.devices))
		for i, dev := range msg.devices {
			items[i] = deviceItem{device: dev}
		}
		m.DeviceList.SetItems(items)

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if !m.ManualMode && !m.Scanning {
		m.DeviceList, cmd = m.DeviceList.Update(msg)
	}

	return m, cmd
}

func (m DiscoveryModel) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		if m.DeviceList.SelectedItem() != nil {
			m.Selected = true
			return m, nil
		}

	case "r":
		m.DeviceList.SetItems([]list.Item{})
		return m, tea.Batch(
			func() tea.Msg { return scanStartMsg{} },
			m.scanDevices(),
			m.Spinner.Tick,
		)

	case "m":
		m.ManualMode = true
		m.AddrInput.SetValue("")
		m.AddrInput.Focus()
	}

	return m, nil
}

func (m DiscoveryModel) updateManualMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "esc":
		m.ManualMode = false
		m.AddrInput.SetValue("")
		m.AddrInput.Blur()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.AddrInput.Value())
		if value != "" {
			device := discovery.DeviceDescriptor{
				Address:     value,
				DisplayName: "Manual: " + value,
				Port:        discovery.DefaultPort,
				Kind:        discovery.DeviceKind,
				URL:         fmt.Sprintf("http://%s:%d", value, discovery.DefaultPort),
			}
			items := append([]list.Item{deviceItem{device: device}}, m.DeviceList.Items()...)
			m.DeviceList.SetItems(items)
			m.DeviceList.Select(0)
			m.ManualMode = false
			m.AddrInput.SetValue("")
			m.AddrInput.Blur()
			return m, nil
		}
	}

	m.AddrInput, cmd = m.AddrInput.Update(msg)
	return m, cmd
}

// View renders the discovery screen
func (m DiscoveryModel) View() string {
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth
	}

	var content string
	switch {
	case m.ManualMode:
		content = m.renderManualEntry()
	case m.Scanning:
		content = m.renderScanning(width)
	default:
		content = m.renderResults()
	}

	var helpText string
	if m.ManualMode {
		helpText = m.Help.View(m.ManualKeys)
	} else {
		helpText = m.Help.View(m.Keys)
	}

	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

func (m DiscoveryModel) renderScanning(width int) string {
	elapsed := int(time.Since(m.ScanStartTime).Seconds())

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(fmt.Sprintf("%s SEARCHING FOR ROKU DEVICES", m.Spinner.View())),
		"",
		SubtitleStyle.Render("Scanning your network..."),
		"",
		SubtitleStyle.Render(fmt.Sprintf("Elapsed: %ds", elapsed)),
		"",
	)

	return lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, content)
}

func (m DiscoveryModel) renderResults() string {
	var b strings.Builder
	b.WriteString("\n")

	if len(m.DeviceList.Items()) == 0 {
		warningStyle := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
		b.WriteString("  ")
		b.WriteString(warningStyle.Render("⚠ No Roku devices found on your network"))
		b.WriteString("\n\n")
		b.WriteString("  Troubleshooting:\n")
		b.WriteString("    • Ensure the Roku is powered on and awake\n")
		b.WriteString("    • Check that it's on the same network segment\n")
		b.WriteString("    • Multicast may be blocked - try 'm' to enter an address\n")
		b.WriteString("    • Use 'r' to rescan\n")
	} else {
		b.WriteString(m.DeviceList.View())
	}

	return b.String()
}

func (m DiscoveryModel) renderManualEntry() string {
	var b strings.Builder
	b.WriteString(SubtitleStyle.Render("Enter device IP address or host:port"))
	b.WriteString("\n\n")
	b.WriteString("  Address: ")
	b.WriteString(m.AddrInput.View())
	b.WriteString("\n\n")
	return b.String()
}

// GetSelectedDevice returns the selected device (if any)
func (m DiscoveryModel) GetSelectedDevice() *discovery.DeviceDescriptor {
	if !m.Selected {
		return nil
	}
	if item, ok := m.DeviceList.SelectedItem().(deviceItem); ok {
		dev := item.device
		return &dev
	}
	return nil
}

// scanDevices is a command that performs one discovery session
func (m DiscoveryModel) scanDevices() tea.Cmd {
	opts := discovery.Options{
		Timeout:             m.ScanTimeout,
		MaxDevices:          m.MaxDevices,
		AcceptBareAddresses: m.AcceptBare,
	}
	return func() tea.Msg {
		devices := discovery.Discover(context.Background(), opts)
		return scanCompleteMsg{devices: devices}
	}
}
