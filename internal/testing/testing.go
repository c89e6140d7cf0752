// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/webplayer/internal/models"
)

// MockPlayer is a test double for [services.PlaybackAPI] and [services.Transport].
//
// Every call is recorded by method name; Err, when set, is returned from every method.
type MockPlayer struct {
	mu    sync.Mutex
	calls []string

	User       *models.Profile
	Lists      []models.Playlist
	Liked      []models.Track
	State      *models.PlayerState
	DeviceList []models.Device

	// Errs overrides Err for a single method name.
	Errs map[string]error
	Err  error

	LastDevice  string
	LastContext string
	LastURIs    []string
	LastShuffle bool
	LastLimit   int
}

// NewMockPlayer returns a player with one profile, two playlists and no devices.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{
		User:  &models.Profile{ID: "user1", DisplayName: "Test User"},
		Lists: []models.Playlist{
			{ID: "p1", Name: "Morning", URI: "spotify:playlist:p1"},
			{ID: "p2", Name: "Evening", URI: "spotify:playlist:p2"},
		},
		State: &models.PlayerState{},
		Errs:  map[string]error{},
	}
}

func (m *MockPlayer) record(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
	if err, ok := m.Errs[name]; ok {
		return err
	}
	return m.Err
}

// Calls returns a copy of the recorded method names.
func (m *MockPlayer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Called reports whether name was recorded.
func (m *MockPlayer) Called(name string) bool {
	for _, c := range m.Calls() {
		if c == name {
			return true
		}
	}
	return false
}

func (m *MockPlayer) Profile(ctx context.Context) (*models.Profile, error) {
	if err := m.record("Profile"); err != nil {
		return nil, err
	}
	return m.User, nil
}

func (m *MockPlayer) Playlists(ctx context.Context) ([]models.Playlist, error) {
	if err := m.record("Playlists"); err != nil {
		return nil, err
	}
	return m.Lists, nil
}

func (m *MockPlayer) LikedSongs(ctx context.Context, limit int) ([]models.Track, error) {
	if err := m.record("LikedSongs"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.LastLimit = limit
	m.mu.Unlock()
	return m.Liked, nil
}

func (m *MockPlayer) PlayerState(ctx context.Context) (*models.PlayerState, error) {
	if err := m.record("PlayerState"); err != nil {
		return nil, err
	}
	return m.State, nil
}

func (m *MockPlayer) Devices(ctx context.Context) ([]models.Device, error) {
	if err := m.record("Devices"); err != nil {
		return nil, err
	}
	return m.DeviceList, nil
}

func (m *MockPlayer) PlayContext(ctx context.Context, deviceID, contextURI string) error {
	m.mu.Lock()
	m.LastDevice, m.LastContext = deviceID, contextURI
	m.mu.Unlock()
	return m.record("PlayContext")
}

func (m *MockPlayer) PlayTracks(ctx context.Context, deviceID string, uris []string) error {
	m.mu.Lock()
	m.LastDevice, m.LastURIs = deviceID, uris
	m.mu.Unlock()
	return m.record("PlayTracks")
}

func (m *MockPlayer) SetShuffle(ctx context.Context, deviceID string, state bool) error {
	m.mu.Lock()
	m.LastDevice, m.LastShuffle = deviceID, state
	m.mu.Unlock()
	return m.record("SetShuffle")
}

func (m *MockPlayer) Resume(ctx context.Context) error   { return m.record("Resume") }
func (m *MockPlayer) Pause(ctx context.Context) error    { return m.record("Pause") }
func (m *MockPlayer) Next(ctx context.Context) error     { return m.record("Next") }
func (m *MockPlayer) Previous(ctx context.Context) error { return m.record("Previous") }

// MockRefresher is a test double for [services.Refresher]
type MockRefresher struct {
	Token string
	Err   error
	Got   string
}

func (m *MockRefresher) Refresh(ctx context.Context, refreshToken string) (string, error) {
	m.Got = refreshToken
	return m.Token, m.Err
}

// Message is one title/message pair recorded by [MockDisplay].
type Message struct {
	Title   string
	Message string
}

// MockDisplay records every message shown to it.
type MockDisplay struct {
	mu       sync.Mutex
	Messages []Message
}

func (d *MockDisplay) Show(title, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Messages = append(d.Messages, Message{Title: title, Message: message})
}

// Last returns the most recent message, or the zero value.
func (d *MockDisplay) Last() Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Messages) == 0 {
		return Message{}
	}
	return d.Messages[len(d.Messages)-1]
}

// Len returns the number of messages shown.
func (d *MockDisplay) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Messages)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
