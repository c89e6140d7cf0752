package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/webplayer/internal/models"
	"github.com/desertthunder/webplayer/internal/player"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	LibraryView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	controller   *player.Controller
	banner       *player.Banner
	deviceName   string
	width        int
	height       int
	header       string
	playlistList list.Model
	device       *models.Device
	status       string
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model. banner must be the [player.Display] the controller was built with.
func NewModel(ctx context.Context, controller *player.Controller, banner *player.Banner, deviceName string) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Your Library"
	l.SetShowHelp(false)

	return &Model{
		ctx:          ctx,
		view:         LoadingView,
		controller:   controller,
		banner:       banner,
		deviceName:   deviceName,
		playlistList: l,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init starts the library load and the device connection side by side.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadLibrary(), m.connect())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playlistList.SetSize(msg.Width-4, msg.Height-12)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgLibraryLoaded:
		res := msg.data.(libraryResult)
		m.view = LibraryView
		if res.library == nil {
			return m, nil
		}
		if res.library.Profile != nil {
			m.header = res.library.Profile.Greeting()
		}
		if res.library.Playlists != nil {
			cmd := m.playlistList.SetItems(playlistItems(res.library.Playlists))
			return m, cmd
		}
	case MsgConnected:
		res := msg.data.(connectResult)
		if res.err == nil {
			m.device = res.device
			m.status = fmt.Sprintf("Connected to %s", res.device.Name)
		}
	case MsgCommandDone:
		res := msg.data.(commandResult)
		if res.err == nil {
			m.status = res.action
		}
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.playlistList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.playlistList, cmd = m.playlistList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.dismiss):
		m.banner.Dismiss()
		return m, nil
	case key.Matches(msg, m.keys.play):
		if selected, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			return m, m.play(selected.playlist)
		}
		return m, nil
	case key.Matches(msg, m.keys.pause):
		return m, m.command("Paused", m.controller.Pause)
	case key.Matches(msg, m.keys.resume):
		return m, m.command("Resumed", m.controller.Resume)
	case key.Matches(msg, m.keys.next):
		return m, m.command("Skipped to next track", m.controller.Next)
	case key.Matches(msg, m.keys.prev):
		return m, m.command("Back to previous track", m.controller.Previous)
	case key.Matches(msg, m.keys.shuffle):
		return m, m.command("Shuffle toggled", func(ctx context.Context) error {
			_, err := m.controller.ToggleShuffle(ctx)
			return err
		})
	case key.Matches(msg, m.keys.connect):
		return m, m.connect()
	case key.Matches(msg, m.keys.refresh):
		return m, m.command("Access token refreshed", m.controller.Refresh)
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) play(pl models.Playlist) tea.Cmd {
	if pl.Liked {
		return m.command("Playing "+models.LikedSongsName, m.controller.PlayLikedSongs)
	}
	return m.command("Playing "+pl.Name, func(ctx context.Context) error {
		return m.controller.PlayPlaylist(ctx, pl.URI)
	})
}

func (m *Model) command(action string, run func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return commandDoneMsg(action, run(m.ctx))
	}
}

func (m *Model) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		lib, err := m.controller.Load(m.ctx)
		return libraryLoadedMsg(lib, err)
	}
}

func (m *Model) connect() tea.Cmd {
	return func() tea.Msg {
		device, err := m.controller.Connect(m.ctx, m.deviceName)
		return connectedMsg(device, err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder

	if title, message, visible := m.banner.Current(); visible {
		body := fmt.Sprintf("%s\n%s\n%s", styles.err.Render(title), message, styles.help.Render("d: proceed anyway"))
		b.WriteString(styles.banner.Render(body))
		b.WriteString("\n")
	}

	switch m.view {
	case LoadingView:
		b.WriteString(styles.title.Render("Loading your library..."))
		return b.String()
	case LibraryView:
		if m.header != "" {
			b.WriteString(styles.title.Render(m.header))
			b.WriteString("\n")
		}
		b.WriteString(m.renderIndicators())
		b.WriteString("\n\n")
		b.WriteString(m.playlistList.View())
		if m.status != "" {
			b.WriteString("\n")
			b.WriteString(styles.ok.Render(m.status))
		}
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

func (m *Model) renderIndicators() string {
	device := styles.warn.Render("Device: not ready")
	if m.device != nil && m.controller.Session().Ready() {
		device = styles.ok.Render("Device: " + m.device.Name)
	}

	shuffle := "Shuffle: off"
	if m.controller.Session().Shuffle() {
		shuffle = styles.ok.Render("Shuffle: on")
	}

	return device + "  " + shuffle
}
