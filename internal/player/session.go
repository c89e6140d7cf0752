package player

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/desertthunder/webplayer/internal/shared"
	"golang.org/x/oauth2"
)

// Session holds the client-side state: tokens, device handle and the local shuffle flag.
type Session struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	deviceID     string
	shuffle      bool
}

var _ oauth2.TokenSource = (*Session)(nil)

// NewSession creates a session from raw tokens. refreshToken may be empty.
func NewSession(accessToken, refreshToken string) *Session {
	return &Session{accessToken: accessToken, refreshToken: refreshToken}
}

// SessionFromURL extracts access_token and refresh_token from a redirect URL.
//
// The query string is checked first, then the fragment. A URL without an access token yields
// [shared.ErrNotAuthenticated] and the caller is expected to send the user to /login.
func SessionFromURL(raw string) (*Session, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	params := u.Query()
	if params.Get("access_token") == "" && u.Fragment != "" {
		if fragment, err := url.ParseQuery(u.Fragment); err == nil {
			params = fragment
		}
	}

	if reason := params.Get("error"); reason != "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrAuthFailed, reason)
	}

	access := params.Get("access_token")
	if access == "" {
		return nil, shared.ErrNotAuthenticated
	}

	return NewSession(access, params.Get("refresh_token")), nil
}

// Token implements [oauth2.TokenSource]. No expiry is tracked.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.accessToken == "" {
		return nil, shared.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: s.accessToken, TokenType: "Bearer", RefreshToken: s.refreshToken}, nil
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// SetToken replaces the access token. The refresh token is kept, it is not rotated.
func (s *Session) SetToken(accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
}

func (s *Session) DeviceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deviceID
}

// SetDevice records the device handle reported by a ready event.
func (s *Session) SetDevice(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deviceID = id
}

// Ready reports whether a device handle has been assigned.
func (s *Session) Ready() bool {
	return s.DeviceID() != ""
}

func (s *Session) Shuffle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shuffle
}

func (s *Session) SetShuffle(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffle = on
}

// ToggleShuffle inverts the local flag and returns the new value.
func (s *Session) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffle = !s.shuffle
	return s.shuffle
}
