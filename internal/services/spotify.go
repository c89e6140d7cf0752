// Spotify Accounts implementation of [Authorizer]
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/webplayer/internal/shared"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// Scopes is the fixed capability set requested at login.
var Scopes = []string{
	spotifyauth.ScopeUserReadPrivate,
	spotifyauth.ScopeUserReadEmail,
	spotifyauth.ScopePlaylistReadPrivate,
	spotifyauth.ScopeStreaming,
	spotifyauth.ScopeUserReadPlaybackState,
	spotifyauth.ScopeUserModifyPlaybackState,
	spotifyauth.ScopeUserLibraryRead,
}

// SpotifyAuth implements [Authorizer] against the Spotify Accounts service.
type SpotifyAuth struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewSpotifyAuth creates a new Spotify authorizer with the given OAuth2 credentials.
//
// auth_url and token_url are optional and default to accounts.spotify.com.
func NewSpotifyAuth(credentials map[string]string) (*SpotifyAuth, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8888/callback"
	}

	authURL := credentials["auth_url"]
	if authURL == "" {
		authURL = spotifyauth.AuthURL
	}

	tokenURL := credentials["token_url"]
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	return &SpotifyAuth{config: config}, nil
}

// SetHTTPClient sets the client used for token endpoint requests. nil restores the default.
func (s *SpotifyAuth) SetHTTPClient(c *http.Client) {
	s.httpClient = c
}

// OAuthConfig returns the underlying [oauth2.Config].
func (s *SpotifyAuth) OAuthConfig() *oauth2.Config {
	return s.config
}

// AuthURL returns the authorization URL: response_type, client_id, scope and redirect_uri.
func (s *SpotifyAuth) AuthURL() string {
	return s.config.AuthCodeURL("")
}

// Exchange trades an authorization code for tokens.
func (s *SpotifyAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", shared.ErrAuthFailed)
	}

	token, err := s.config.Exchange(s.context(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: token endpoint returned no access token", shared.ErrAuthFailed)
	}

	return token, nil
}

// Refresh trades a refresh token for a new access token. The refresh token is not rotated.
func (s *SpotifyAuth) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	source := s.config.TokenSource(s.context(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrRefreshFailed, err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: token endpoint returned no access token", shared.ErrRefreshFailed)
	}

	return token, nil
}

func (s *SpotifyAuth) context(ctx context.Context) context.Context {
	if s.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
}

// ErrorCode extracts the OAuth error code (e.g. "invalid_grant") from an exchange error.
//
// Returns fallback when the error did not come from the token endpoint.
func ErrorCode(err error, fallback string) string {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.ErrorCode != "" {
		return rerr.ErrorCode
	}
	return fallback
}
