package player

import (
	"errors"
	"sync"
	"testing"

	"github.com/desertthunder/webplayer/internal/shared"
)

func TestSession(t *testing.T) {
	t.Run("SessionFromURL", func(t *testing.T) {
		t.Run("Query Tokens", func(t *testing.T) {
			s, err := SessionFromURL("http://localhost:8888/?access_token=at&refresh_token=rt")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if s.AccessToken() != "at" || s.RefreshToken() != "rt" {
				t.Errorf("unexpected tokens %q / %q", s.AccessToken(), s.RefreshToken())
			}
		})

		t.Run("Fragment Tokens", func(t *testing.T) {
			s, err := SessionFromURL("http://localhost:8888/#access_token=at")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if s.AccessToken() != "at" || s.RefreshToken() != "" {
				t.Errorf("unexpected tokens %q / %q", s.AccessToken(), s.RefreshToken())
			}
		})

		t.Run("No Token", func(t *testing.T) {
			_, err := SessionFromURL("http://localhost:8888/")
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("Empty Token", func(t *testing.T) {
			_, err := SessionFromURL("http://localhost:8888/?access_token=&refresh_token=rt")
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("Error Redirect", func(t *testing.T) {
			_, err := SessionFromURL("http://localhost:8888/?error=invalid_grant")
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})

		t.Run("Malformed URL", func(t *testing.T) {
			_, err := SessionFromURL("http://[::1")
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("Token", func(t *testing.T) {
		s := NewSession("at", "rt")
		tok, err := s.Token()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tok.AccessToken != "at" || tok.Type() != "Bearer" {
			t.Errorf("unexpected token %+v", tok)
		}

		s.SetToken("fresh")
		tok, _ = s.Token()
		if tok.AccessToken != "fresh" || tok.RefreshToken != "rt" {
			t.Errorf("expected swapped access token with same refresh token, got %+v", tok)
		}

		if _, err := NewSession("", "").Token(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Device", func(t *testing.T) {
		s := NewSession("at", "")
		if s.Ready() {
			t.Error("expected new session not to be ready")
		}
		s.SetDevice("dev-1")
		if !s.Ready() || s.DeviceID() != "dev-1" {
			t.Errorf("expected device dev-1, got %q", s.DeviceID())
		}
	})

	t.Run("ToggleShuffle", func(t *testing.T) {
		s := NewSession("at", "")
		if !s.ToggleShuffle() || !s.Shuffle() {
			t.Error("expected shuffle on after first toggle")
		}
		if s.ToggleShuffle() || s.Shuffle() {
			t.Error("expected shuffle off after second toggle")
		}
	})

	t.Run("Concurrent Access", func(t *testing.T) {
		s := NewSession("at", "rt")
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() { defer wg.Done(); s.ToggleShuffle() }()
			go func() { defer wg.Done(); s.Token(); s.DeviceID() }()
		}
		wg.Wait()

		if s.Shuffle() {
			t.Error("expected an even number of toggles to leave shuffle off")
		}
	})
}
