package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/desertthunder/webplayer/internal/shared"
	"golang.org/x/oauth2"
)

// fakeAPI records requests and serves canned Web API responses.
type fakeAPI struct {
	t        *testing.T
	mu       sync.Mutex
	requests []*http.Request
	bodies   []map[string]any
	routes   map[string]http.HandlerFunc
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	api := &fakeAPI{t: t, routes: map[string]http.HandlerFunc{}}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)
	return api, server
}

func (f *fakeAPI) handle(pattern string, h http.HandlerFunc) {
	f.routes[pattern] = h
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("Authorization"); got != "Bearer session-token" {
		f.t.Errorf("expected bearer session-token, got %q", got)
	}

	var body map[string]any
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		json.Unmarshal(data, &body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.bodies = append(f.bodies, body)
	f.mu.Unlock()

	h, ok := f.routes[r.Method+" "+r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h(w, r)
}

func (f *fakeAPI) last() (*http.Request, map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		f.t.Fatal("expected a request to be made")
	}
	return f.requests[len(f.requests)-1], f.bodies[len(f.bodies)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newTestPlayback(server *httptest.Server) *PlaybackService {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "session-token"})
	return NewPlaybackService(source, PlaybackOpts{BaseURL: server.URL + "/"})
}

func TestPlaybackService(t *testing.T) {
	ctx := context.Background()

	t.Run("Profile", func(t *testing.T) {
		api, server := newFakeAPI(t)
		api.handle("GET /me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"id":           "u1",
				"display_name": "Ada",
				"email":        "ada@example.com",
				"product":      "premium",
			})
		})

		profile, err := newTestPlayback(server).Profile(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if profile.DisplayName != "Ada" || profile.Product != "premium" {
			t.Errorf("unexpected profile %+v", profile)
		}
	})

	t.Run("Playlists Follows Pagination", func(t *testing.T) {
		api, server := newFakeAPI(t)
		api.handle("GET /me/playlists", func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("offset") {
			case "0", "":
				writeJSON(w, http.StatusOK, map[string]any{
					"items": []map[string]any{
						{"id": "p1", "name": "One", "uri": "spotify:playlist:p1", "tracks": map[string]any{"total": 3}},
						{"id": "p2", "name": "", "uri": "spotify:playlist:p2", "tracks": map[string]any{"total": 1}},
					},
					"next": server.URL + "/me/playlists?offset=2",
				})
			case "2":
				writeJSON(w, http.StatusOK, map[string]any{
					"items": []map[string]any{
						{"id": "p3", "name": "Three", "uri": "spotify:playlist:p3", "tracks": map[string]any{"total": 9}},
					},
					"next": nil,
				})
			default:
				t.Errorf("unexpected offset %s", r.URL.Query().Get("offset"))
			}
		})

		playlists, err := newTestPlayback(server).Playlists(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(playlists) != 3 {
			t.Fatalf("expected 3 playlists, got %d", len(playlists))
		}
		if playlists[0].URI != "spotify:playlist:p1" || playlists[0].TrackCount != 3 {
			t.Errorf("unexpected first playlist %+v", playlists[0])
		}
		if playlists[2].Name != "Three" {
			t.Errorf("expected last playlist Three, got %s", playlists[2].Name)
		}
		if api.count() != 2 {
			t.Errorf("expected 2 requests, got %d", api.count())
		}
	})

	t.Run("LikedSongs Preserves Order", func(t *testing.T) {
		api, server := newFakeAPI(t)
		api.handle("GET /me/tracks", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("limit") != "50" {
				t.Errorf("expected limit 50, got %s", r.URL.Query().Get("limit"))
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"items": []map[string]any{
					{"added_at": "2024-01-01T00:00:00Z", "track": map[string]any{
						"id": "t2", "name": "Second", "uri": "spotify:track:t2",
						"artists": []map[string]any{{"name": "Band"}},
						"album":   map[string]any{"name": "Record"},
					}},
					{"added_at": "2023-01-01T00:00:00Z", "track": map[string]any{
						"id": "t1", "name": "First", "uri": "spotify:track:t1",
					}},
				},
			})
		})

		tracks, err := newTestPlayback(server).LikedSongs(ctx, 50)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}
		if tracks[0].URI != "spotify:track:t2" || tracks[1].URI != "spotify:track:t1" {
			t.Errorf("expected listing order, got %s, %s", tracks[0].URI, tracks[1].URI)
		}
		if tracks[0].Artist != "Band" || tracks[0].Album != "Record" {
			t.Errorf("unexpected track metadata %+v", tracks[0])
		}
	})

	t.Run("PlayerState", func(t *testing.T) {
		api, server := newFakeAPI(t)
		api.handle("GET /me/player", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"device":        map[string]any{"id": "d1", "name": "Web Player", "type": "Computer", "is_active": true},
				"shuffle_state": true,
				"repeat_state":  "off",
				"is_playing":    true,
				"item":          map[string]any{"id": "t1", "name": "Song", "uri": "spotify:track:t1"},
			})
		})

		state, err := newTestPlayback(server).PlayerState(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !state.Shuffle || !state.Playing {
			t.Errorf("expected shuffle and playing, got %+v", state)
		}
		if state.Device.ID != "d1" || !state.Device.Active {
			t.Errorf("unexpected device %+v", state.Device)
		}
		if state.Track == nil || state.Track.Name != "Song" {
			t.Errorf("unexpected track %+v", state.Track)
		}
	})

	t.Run("Devices", func(t *testing.T) {
		api, server := newFakeAPI(t)
		api.handle("GET /me/player/devices", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"devices": []map[string]any{
					{"id": "d1", "name": "Web Player", "type": "Computer", "is_active": false},
					{"id": "d2", "name": "Phone", "type": "Smartphone", "is_active": true},
				},
			})
		})

		devices, err := newTestPlayback(server).Devices(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(devices) != 2 || devices[1].Name != "Phone" || !devices[1].Active {
			t.Errorf("unexpected devices %+v", devices)
		}
	})

	t.Run("PlayContext", func(t *testing.T) {
		api, server := newFakeAPI(t)

		if err := newTestPlayback(server).PlayContext(ctx, "dev-1", "spotify:playlist:p1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		r, body := api.last()
		if r.Method != http.MethodPut || r.URL.Path != "/me/player/play" {
			t.Errorf("expected PUT /me/player/play, got %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("device_id") != "dev-1" {
			t.Errorf("expected device_id dev-1, got %s", r.URL.Query().Get("device_id"))
		}
		if body["context_uri"] != "spotify:playlist:p1" {
			t.Errorf("expected context_uri in body, got %v", body)
		}
		if _, ok := body["uris"]; ok {
			t.Errorf("expected no uris in body, got %v", body["uris"])
		}
	})

	t.Run("PlayTracks", func(t *testing.T) {
		api, server := newFakeAPI(t)
		uris := []string{"spotify:track:b", "spotify:track:a"}

		if err := newTestPlayback(server).PlayTracks(ctx, "dev-1", uris); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		r, body := api.last()
		if r.URL.Query().Get("device_id") != "dev-1" {
			t.Errorf("expected device_id dev-1, got %s", r.URL.Query().Get("device_id"))
		}

		got, ok := body["uris"].([]any)
		if !ok || len(got) != 2 || got[0] != "spotify:track:b" || got[1] != "spotify:track:a" {
			t.Errorf("expected uris in order, got %v", body["uris"])
		}
		if _, ok := body["context_uri"]; ok {
			t.Errorf("expected no context_uri in body, got %v", body["context_uri"])
		}
	})

	t.Run("SetShuffle", func(t *testing.T) {
		for _, state := range []bool{true, false} {
			api, server := newFakeAPI(t)

			if err := newTestPlayback(server).SetShuffle(ctx, "dev-1", state); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			r, _ := api.last()
			want := "false"
			if state {
				want = "true"
			}
			if r.Method != http.MethodPut || r.URL.Path != "/me/player/shuffle" {
				t.Errorf("expected PUT /me/player/shuffle, got %s %s", r.Method, r.URL.Path)
			}
			if r.URL.Query().Get("state") != want {
				t.Errorf("expected state=%s, got %s", want, r.URL.Query().Get("state"))
			}
			if r.URL.Query().Get("device_id") != "dev-1" {
				t.Errorf("expected device_id dev-1, got %s", r.URL.Query().Get("device_id"))
			}
		}
	})

	t.Run("Transport Commands Omit Device", func(t *testing.T) {
		tests := []struct {
			name   string
			call   func(*PlaybackService) error
			method string
			path   string
		}{
			{"Resume", func(s *PlaybackService) error { return s.Resume(ctx) }, http.MethodPut, "/me/player/play"},
			{"Pause", func(s *PlaybackService) error { return s.Pause(ctx) }, http.MethodPut, "/me/player/pause"},
			{"Next", func(s *PlaybackService) error { return s.Next(ctx) }, http.MethodPost, "/me/player/next"},
			{"Previous", func(s *PlaybackService) error { return s.Previous(ctx) }, http.MethodPost, "/me/player/previous"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				api, server := newFakeAPI(t)

				if err := tt.call(newTestPlayback(server)); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}

				r, _ := api.last()
				if r.Method != tt.method || r.URL.Path != tt.path {
					t.Errorf("expected %s %s, got %s %s", tt.method, tt.path, r.Method, r.URL.Path)
				}
				if r.URL.Query().Has("device_id") {
					t.Errorf("expected no device_id, got %s", r.URL.RawQuery)
				}
			})
		}
	})

	t.Run("Error Mapping", func(t *testing.T) {
		tests := []struct {
			name   string
			status int
			want   error
		}{
			{"Unauthorized", http.StatusUnauthorized, shared.ErrTokenExpired},
			{"Forbidden", http.StatusForbidden, shared.ErrForbidden},
			{"Not Found", http.StatusNotFound, shared.ErrAPIRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				api, server := newFakeAPI(t)
				api.handle("GET /me", func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, tt.status, map[string]any{
						"error": map[string]any{"status": tt.status, "message": "nope"},
					})
				})

				_, err := newTestPlayback(server).Profile(ctx)
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("Token Read Per Request", func(t *testing.T) {
		var mu sync.Mutex
		current := "first"
		source := tokenFunc(func() (*oauth2.Token, error) {
			mu.Lock()
			defer mu.Unlock()
			return &oauth2.Token{AccessToken: current}, nil
		})

		var seen []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		svc := NewPlaybackService(source, PlaybackOpts{BaseURL: server.URL + "/"})
		svc.Pause(ctx)

		mu.Lock()
		current = "second"
		mu.Unlock()
		svc.Pause(ctx)

		if len(seen) != 2 || seen[0] != "Bearer first" || seen[1] != "Bearer second" {
			t.Errorf("expected each request to carry the current token, got %v", seen)
		}
	})
}

type tokenFunc func() (*oauth2.Token, error)

func (f tokenFunc) Token() (*oauth2.Token, error) { return f() }
