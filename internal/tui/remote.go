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
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/rokuremote/internal/ecp"
)

// activeAppPollInterval is how often the remote screen samples the
// device's foreground app.
const activeAppPollInterval = 5 * time.Second

// Messages for async device operations
type activeAppMsg struct {
	app *ecp.App
	err error
}

type appsLoadedMsg struct {
	apps []ecp.App
	err  error
}

type commandResultMsg struct {
	action string
	err    error
}

type pollTickMsg time.Time
type clearPressedMsg struct{}

// remoteKeyMap defines key bindings for the remote screen
type remoteKeyMap struct {
	Navigate key.Binding
	Select   key.Binding
	Back     key.Binding
	Home     key.Binding
	Play     key.Binding
	Text     key.Binding
	Apps     key.Binding
	Quit     key.Binding
}

func (k remoteKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.Select, k.Back, k.Home, k.Play, k.Text, k.Apps, k.Quit}
}

func (k remoteKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigate, k.Select, k.Back, k.Home},
		{k.Play, k.Text, k.Apps, k.Quit},
	}
}

// keypadBindings maps terminal keys onto remote keys
var keypadBindings = map[string]string{
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"enter":     "Select",
	"backspace": "Back",
	"h":         "Home",
	" ":         "Play",
	"<":         "Rev",
	">":         "Fwd",
	"i":         "Info",
	"*":         "Info",
	"+":         "VolumeUp",
	"-":         "VolumeDown",
	"m":         "VolumeMute",
	"p":         "PowerOff",
	"r":         "InstantReplay",
}

// appItem wraps a channel for the launcher list
type appItem struct {
	app ecp.App
}

func (a appItem) FilterValue() string { return a.app.Name }
func (a appItem) Title() string       { return a.app.Name }
func (a appItem) Description() string { return "id " + a.app.ID }

type appDelegate struct{}

func (appDelegate) Height() int                         { return 1 }
func (appDelegate) Spacing() int                        { return 0 }
func (appDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (appDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ai, ok := item.(appItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprint(w, SelectedMenuItemStyle.Render("→ "+ai.app.Name))
		return
	}
	fmt.Fprint(w, MenuItemStyle.Render(ai.app.Name))
}

// RemoteModel is the remote control screen: a key pad, a text entry mode,
// and an app launcher, all driving one device.
type RemoteModel struct {
	Device  string // host or host:port
	Name    string // display name
	Timeout time.Duration

	// Device state
	ActiveApp *ecp.App
	LastErr   error

	// Text entry mode
	TextMode  bool
	TextInput textinput.Model

	// App launcher mode
	AppsMode bool
	AppList  list.Model

	// Back request (to discovery)
	backRequested bool

	// UI state
	Width      int
	Height     int
	PressedKey string
	Help       help.Model
	Keys       remoteKeyMap
}

// NewRemoteModel creates a remote screen for one device
func NewRemoteModel(device, name string, timeout time.Duration) RemoteModel {
	textInput := textinput.New()
	textInput.Placeholder = "Type and press Enter to send..."
	textInput.CharLimit = 200
	textInput.Width = 40

	appList := list.New([]list.Item{}, appDelegate{}, 0, 0)
	appList.Title = "Channels"
	appList.SetShowStatusBar(false)
	appList.SetFilteringEnabled(true)
	appList.Styles.Title = TitleStyle

	keys := remoteKeyMap{
		Navigate: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("↑↓←→", "navigate"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ok"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "back"),
		),
		Home: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "home"),
		),
		Play: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Text: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "keyboard"),
		),
		Apps: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "channels"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/esc", "back"),
		),
	}

	return RemoteModel{
		Device:    device,
		Name:      name,
		Timeout:   timeout,
		TextInput: textInput,
		AppList:   appList,
		Help:      help.New(),
		Keys:      keys,
	}
}

func (m RemoteModel) client() *ecp.Client {
	c := ecp.NewClient(m.Device)
	if m.Timeout > 0 {
		c.SetTimeout(m.Timeout)
	}
	return c
}

// Init fetches the initial device state
func (m RemoteModel) Init() tea.Cmd {
	return tea.Batch(
		m.fetchActiveApp(),
		m.fetchApps(),
		pollTick(),
	)
}

// IsBackRequested reports whether the user asked to return to discovery
func (m RemoteModel) IsBackRequested() bool {
	return m.backRequested
}

// Update handles messages and updates the model
func (m RemoteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.TextMode {
			return m.updateTextMode(msg)
		}
		if m.AppsMode {
			return m.updateAppsMode(msg)
		}
		return m.updateKeypadMode(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.AppList.SetWidth(msg.Width - 4)
		m.AppList.SetHeight(msg.Height - 12)

	case pollTickMsg:
		return m, tea.Batch(m.fetchActiveApp(), pollTick())

	case activeAppMsg:
		if msg.err == nil {
			m.ActiveApp = msg.app
			m.LastErr = nil
		} else {
			m.LastErr = msg.err
		}

	case appsLoadedMsg:
		if msg.err == nil {
			items := make([]list.Item, len(msg.apps))
			for i, app := range msg.apps {
				items[i] = appItem{app: app}
			}
			m.AppList.SetItems(items)
		}

	case commandResultMsg:
		m.LastErr = msg.err

	case clearPressedMsg:
		m.PressedKey = ""
	}

	return m, cmd
}

func (m RemoteModel) updateKeypadMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()

	switch s {
	case "q", "esc":
		m.backRequested = true
		return m, nil

	case "t":
		m.TextMode = true
		m.TextInput.SetValue("")
		m.TextInput.Focus()
		return m, nil

	case "a":
		m.AppsMode = true
		return m, m.fetchApps()
	}

	if rokuKey, ok := keypadBindings[s]; ok {
		m.PressedKey = rokuKey
		return m, tea.Batch(
			m.sendKey(rokuKey),
			tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg { return clearPressedMsg{} }),
		)
	}

	return m, nil
}

func (m RemoteModel) updateTextMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.TextMode = false
		m.TextInput.Blur()
		return m, nil

	case "enter":
		text := m.TextInput.Value()
		m.TextMode = false
		m.TextInput.Blur()
		if text != "" {
			return m, m.sendText(text)
		}
		return m, nil
	}

	m.TextInput, cmd = m.TextInput.Update(msg)
	return m, cmd
}

func (m RemoteModel) updateAppsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc", "a":
		// Don't swallow esc while the list filter is active
		if m.AppList.FilterState() != list.Filtering {
			m.AppsMode = false
			return m, nil
		}

	case "enter":
		if item, ok := m.AppList.SelectedItem().(appItem); ok {
			m.AppsMode = false
			return m, m.launchApp(item.app.ID)
		}
	}

	m.AppList, cmd = m.AppList.Update(msg)
	return m, cmd
}

// View renders the remote screen
func (m RemoteModel) View() string {
	var content string
	switch {
	case m.TextMode:
		content = m.renderTextEntry()
	case m.AppsMode:
		content = m.AppList.View()
	default:
		content = m.renderKeypad()
	}

	return RenderApplicationContainer(content, m.Help.View(m.Keys), m.Width, m.Height)
}

func (m RemoteModel) renderKeypad() string {
	var b strings.Builder

	b.WriteString(RenderTitle(m.Name))
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n\n")

	rows := [][]string{
		{"Back", "Up", "Home"},
		{"Left", "Select", "Right"},
		{"Rev", "Down", "Fwd"},
		{"VolumeDown", "Play", "VolumeUp"},
	}
	labels := map[string]string{
		"Back": "Back", "Up": "▲", "Home": "Home",
		"Left": "◀", "Select": "OK", "Right": "▶",
		"Rev": "◀◀", "Down": "▼", "Fwd": "▶▶",
		"VolumeDown": "Vol−", "Play": "▶‖", "VolumeUp": "Vol+",
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, rokuKey := range row {
			style := KeyStyle
			if m.PressedKey == rokuKey {
				style = PressedKeyStyle
			}
			cells[i] = style.Render(labels[rokuKey])
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render("t - keyboard   a - channels   i - info   m - mute   p - power off"))
	b.WriteString("\n")

	return b.String()
}

func (m RemoteModel) renderStatusLine() string {
	if m.LastErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(ErrorColor)
		return "  " + errStyle.Render("Device unreachable: "+m.LastErr.Error())
	}
	if m.ActiveApp != nil {
		return "  " + StatusLineStyle.Render("Now playing: "+m.ActiveApp.Name)
	}
	return "  " + SubtitleStyle.Render("Home screen")
}

func (m RemoteModel) renderTextEntry() string {
	var b strings.Builder
	b.WriteString(RenderTitle(m.Name))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Text is sent to the device keyboard"))
	b.WriteString("\n\n")
	b.WriteString("  ")
	b.WriteString(m.TextInput.View())
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render("  enter - send   esc - cancel"))
	b.WriteString("\n")
	return b.String()
}

// Commands

func pollTick() tea.Cmd {
	return tea.Tick(activeAppPollInterval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

func (m RemoteModel) fetchActiveApp() tea.Cmd {
	client := m.client()
	return func() tea.Msg {
		app, err := client.ActiveApp(context.Background())
		return activeAppMsg{app: app, err: err}
	}
}

func (m RemoteModel) fetchApps() tea.Cmd {
	client := m.client()
	return func() tea.Msg {
		apps, err := client.Apps(context.Background())
		return appsLoadedMsg{apps: apps, err: err}
	}
}

func (m RemoteModel) sendKey(rokuKey string) tea.Cmd {
	client := m.client()
	return func() tea.Msg {
		return commandResultMsg{action: "keypress", err: client.Keypress(context.Background(), rokuKey)}
	}
}

func (m RemoteModel) sendText(text string) tea.Cmd {
	client := m.client()
	return func() tea.Msg {
		return commandResultMsg{action: "text", err: client.TypeText(context.Background(), text)}
	}
}

func (m RemoteModel) launchApp(appID string) tea.Cmd {
	client := m.client()
	return func() tea.Msg {
		return commandResultMsg{action: "launch", err: client.Launch(context.Background(), appID)}
	}
}
