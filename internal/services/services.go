// package services defines the interfaces the proxy and the player depend on
package services

import (
	"context"

	"github.com/desertthunder/webplayer/internal/models"
	"golang.org/x/oauth2"
)

// Authorizer performs the confidential half of the authorization code flow.
type Authorizer interface {
	// AuthURL returns the authorization endpoint URL the user is redirected to.
	AuthURL() string

	// Exchange trades an authorization code for an access/refresh token pair.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// Refresh trades a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// Library reads the authenticated user's data.
type Library interface {
	Profile(ctx context.Context) (*models.Profile, error)
	Playlists(ctx context.Context) ([]models.Playlist, error)
	LikedSongs(ctx context.Context, limit int) ([]models.Track, error)
}

// PlaybackAPI is the REST surface for reading player state and starting playback on a specific device.
type PlaybackAPI interface {
	Library

	PlayerState(ctx context.Context) (*models.PlayerState, error)
	Devices(ctx context.Context) ([]models.Device, error)

	// PlayContext starts a playlist (or album) context on the device.
	PlayContext(ctx context.Context, deviceID, contextURI string) error

	// PlayTracks starts the given track URIs, in order, on the device.
	PlayTracks(ctx context.Context, deviceID string, uris []string) error

	// SetShuffle sets the shuffle state on the device.
	SetShuffle(ctx context.Context, deviceID string, state bool) error
}

// Transport is the player-native control surface. It acts on whatever device the player is attached to.
type Transport interface {
	Resume(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
}

// Refresher exchanges a refresh token for a new access token through the proxy.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
