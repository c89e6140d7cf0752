package ui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/webplayer/internal/models"
	"github.com/desertthunder/webplayer/internal/player"
	"github.com/desertthunder/webplayer/internal/shared"
	tu "github.com/desertthunder/webplayer/internal/testing"
)

func newTestModel(api *tu.MockPlayer, session *player.Session) (*Model, *player.Banner) {
	banner := &player.Banner{}
	controller := player.NewController(session, api, player.Options{Display: banner, Logger: log.New(io.Discard)})
	m := NewModel(context.Background(), controller, banner, "")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return m, banner
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// exec runs cmd and feeds the resulting message back into the model.
func exec(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

func TestModel(t *testing.T) {
	t.Run("Loading View", func(t *testing.T) {
		m, _ := newTestModel(tu.NewMockPlayer(), player.NewSession("at", ""))
		if !strings.Contains(m.View(), "Loading your library") {
			t.Errorf("expected loading view, got %q", m.View())
		}
	})

	t.Run("Library Loaded", func(t *testing.T) {
		m, _ := newTestModel(tu.NewMockPlayer(), player.NewSession("at", ""))
		exec(t, m, m.loadLibrary())

		if m.view != LibraryView {
			t.Fatalf("expected library view, got %v", m.view)
		}
		if !strings.Contains(m.View(), "Hello, Test User here is your library") {
			t.Errorf("expected greeting in view")
		}

		items := m.playlistList.Items()
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		if last := items[2].(playlistItem); !last.playlist.Liked || last.playlist.Name != models.LikedSongsName {
			t.Errorf("expected Liked Songs last, got %+v", last.playlist)
		}
	})

	t.Run("Connect Then Play Selected", func(t *testing.T) {
		api := tu.NewMockPlayer()
		api.DeviceList = []models.Device{{ID: "d1", Name: "Laptop", Active: true}}
		session := player.NewSession("at", "")
		m, _ := newTestModel(api, session)

		exec(t, m, m.connect())
		if !strings.Contains(m.renderIndicators(), "Device: Laptop") {
			t.Errorf("expected device indicator, got %q", m.renderIndicators())
		}

		exec(t, m, m.loadLibrary())
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		exec(t, m, cmd)

		if api.LastContext != "spotify:playlist:p1" || api.LastDevice != "d1" {
			t.Errorf("expected first playlist on d1, got %q on %q", api.LastContext, api.LastDevice)
		}
		if m.status != "Playing Morning" {
			t.Errorf("unexpected status %q", m.status)
		}
	})

	t.Run("Play Liked Songs", func(t *testing.T) {
		api := tu.NewMockPlayer()
		api.Liked = []models.Track{{URI: "spotify:track:1"}}
		session := player.NewSession("at", "")
		session.SetDevice("d1")
		m, _ := newTestModel(api, session)

		exec(t, m, m.loadLibrary())
		m.playlistList.Select(2)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		exec(t, m, cmd)

		if !api.Called("PlayTracks") {
			t.Errorf("expected liked songs to play, got %v", api.Calls())
		}
	})

	t.Run("Not Ready Shows Banner", func(t *testing.T) {
		m, banner := newTestModel(tu.NewMockPlayer(), player.NewSession("at", ""))
		exec(t, m, m.loadLibrary())

		_, cmd := m.Update(runes("s"))
		exec(t, m, cmd)

		title, _, visible := banner.Current()
		if !visible || title != "Player not ready" {
			t.Errorf("expected not-ready banner, got %q visible=%v", title, visible)
		}
		if !strings.Contains(m.View(), "Player not ready") {
			t.Error("expected banner in view")
		}
		if !strings.Contains(m.renderIndicators(), "Shuffle: on") {
			t.Errorf("expected shuffle flag flipped, got %q", m.renderIndicators())
		}

		m.Update(runes("d"))
		if _, _, visible := banner.Current(); visible {
			t.Error("expected banner dismissed")
		}
	})

	t.Run("Transport Keys", func(t *testing.T) {
		tests := map[string]string{"p": "Pause", "r": "Resume", "n": "Next", "b": "Previous"}

		for keyName, method := range tests {
			t.Run(method, func(t *testing.T) {
				api := tu.NewMockPlayer()
				m, _ := newTestModel(api, player.NewSession("at", ""))
				exec(t, m, m.loadLibrary())

				_, cmd := m.Update(runes(keyName))
				exec(t, m, cmd)

				if !api.Called(method) {
					t.Errorf("expected %s, got %v", method, api.Calls())
				}
			})
		}
	})

	t.Run("Command Failure Keeps Status", func(t *testing.T) {
		api := tu.NewMockPlayer()
		api.Errs["Pause"] = shared.ErrAPIRequest
		m, banner := newTestModel(api, player.NewSession("at", ""))
		exec(t, m, m.loadLibrary())
		m.status = "Playing Morning"

		_, cmd := m.Update(runes("p"))
		exec(t, m, cmd)

		if m.status != "Playing Morning" {
			t.Errorf("expected status unchanged, got %q", m.status)
		}
		if title, _, _ := banner.Current(); title != "Error pausing playback" {
			t.Errorf("unexpected banner title %q", title)
		}
	})

	t.Run("Quit", func(t *testing.T) {
		m, _ := newTestModel(tu.NewMockPlayer(), player.NewSession("at", ""))
		_, cmd := m.Update(runes("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}
