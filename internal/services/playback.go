// Spotify Web API implementation of [PlaybackAPI] and [Transport]
//
// Response types come from github.com/zmb3/spotify/v2 and are mapped onto internal/models.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/webplayer/internal/models"
	"github.com/desertthunder/webplayer/internal/shared"
	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

const playlistPageSize = 50

var (
	_ PlaybackAPI = (*PlaybackService)(nil)
	_ Transport   = (*PlaybackService)(nil)
)

// PlaybackOpts contains options for creating a [PlaybackService].
type PlaybackOpts struct {
	// BaseURL overrides https://api.spotify.com/v1/; must end in a slash.
	BaseURL string
	// Transport is the underlying round tripper; defaults to [http.DefaultTransport].
	Transport http.RoundTripper
}

// PlaybackService talks to the Spotify Web API on behalf of one session.
type PlaybackService struct {
	client *spotify.Client
}

// NewPlaybackService creates a Web API client whose requests carry the bearer token from source.
//
// The token is read on every request, the source is never cached.
func NewPlaybackService(source oauth2.TokenSource, opts PlaybackOpts) *PlaybackService {
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: source, Base: opts.Transport},
	}

	var clientOpts []spotify.ClientOption
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, spotify.WithBaseURL(opts.BaseURL))
	}

	return &PlaybackService{client: spotify.New(httpClient, clientOpts...)}
}

// Profile retrieves the current user's profile.
func (s *PlaybackService) Profile(ctx context.Context) (*models.Profile, error) {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, apiError(err)
	}

	return &models.Profile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Product:     user.Product,
	}, nil
}

// Playlists retrieves every playlist of the current user, following pagination.
func (s *PlaybackService) Playlists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist
	offset := 0

	for {
		page, err := s.client.CurrentUsersPlaylists(ctx, spotify.Limit(playlistPageSize), spotify.Offset(offset))
		if err != nil {
			return nil, apiError(err)
		}

		for _, sp := range page.Playlists {
			playlists = append(playlists, models.Playlist{
				ID:         string(sp.ID),
				Name:       sp.Name,
				URI:        string(sp.URI),
				TrackCount: int(sp.Tracks.Total),
			})
		}

		if page.Next == "" || len(page.Playlists) == 0 {
			break
		}
		offset += len(page.Playlists)
	}

	return playlists, nil
}

// LikedSongs retrieves up to limit saved tracks, in the order the API lists them.
func (s *PlaybackService) LikedSongs(ctx context.Context, limit int) ([]models.Track, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	page, err := s.client.CurrentUsersTracks(ctx, spotify.Limit(limit))
	if err != nil {
		return nil, apiError(err)
	}

	tracks := make([]models.Track, 0, len(page.Tracks))
	for _, st := range page.Tracks {
		tracks = append(tracks, toTrack(st.FullTrack))
	}

	return tracks, nil
}

// PlayerState retrieves the current playback state. A user with no active device yields a zero state.
func (s *PlaybackService) PlayerState(ctx context.Context) (*models.PlayerState, error) {
	ps, err := s.client.PlayerState(ctx)
	if err != nil {
		return nil, apiError(err)
	}

	state := &models.PlayerState{
		Device:  toDevice(ps.Device),
		Playing: ps.Playing,
		Shuffle: ps.ShuffleState,
		Repeat:  ps.RepeatState,
	}
	if ps.Item != nil {
		track := toTrack(*ps.Item)
		state.Track = &track
	}

	return state, nil
}

// Devices lists the user's available Spotify Connect devices.
func (s *PlaybackService) Devices(ctx context.Context) ([]models.Device, error) {
	devices, err := s.client.PlayerDevices(ctx)
	if err != nil {
		return nil, apiError(err)
	}

	result := make([]models.Device, 0, len(devices))
	for _, d := range devices {
		result = append(result, toDevice(d))
	}
	return result, nil
}

// PlayContext starts contextURI on deviceID with a {context_uri} body.
func (s *PlaybackService) PlayContext(ctx context.Context, deviceID, contextURI string) error {
	uri := spotify.URI(contextURI)
	opts := &spotify.PlayOptions{DeviceID: deviceRef(deviceID), PlaybackContext: &uri}
	return apiError(s.client.PlayOpt(ctx, opts))
}

// PlayTracks starts uris on deviceID with a {uris: [...]} body.
func (s *PlaybackService) PlayTracks(ctx context.Context, deviceID string, uris []string) error {
	trackURIs := make([]spotify.URI, 0, len(uris))
	for _, u := range uris {
		trackURIs = append(trackURIs, spotify.URI(u))
	}
	opts := &spotify.PlayOptions{DeviceID: deviceRef(deviceID), URIs: trackURIs}
	return apiError(s.client.PlayOpt(ctx, opts))
}

// SetShuffle sends state as "true"/"false" in the query string.
func (s *PlaybackService) SetShuffle(ctx context.Context, deviceID string, state bool) error {
	return apiError(s.client.ShuffleOpt(ctx, state, &spotify.PlayOptions{DeviceID: deviceRef(deviceID)}))
}

// Resume resumes playback on the attached device.
func (s *PlaybackService) Resume(ctx context.Context) error {
	return apiError(s.client.Play(ctx))
}

// Pause pauses playback on the attached device.
func (s *PlaybackService) Pause(ctx context.Context) error {
	return apiError(s.client.Pause(ctx))
}

// Next skips to the next track on the attached device.
func (s *PlaybackService) Next(ctx context.Context) error {
	return apiError(s.client.Next(ctx))
}

// Previous goes back to the previous track on the attached device.
func (s *PlaybackService) Previous(ctx context.Context) error {
	return apiError(s.client.Previous(ctx))
}

func deviceRef(deviceID string) *spotify.ID {
	if deviceID == "" {
		return nil
	}
	id := spotify.ID(deviceID)
	return &id
}

func toTrack(ft spotify.FullTrack) models.Track {
	track := models.Track{
		ID:    string(ft.ID),
		Name:  ft.Name,
		URI:   string(ft.URI),
		Album: ft.Album.Name,
	}
	if len(ft.Artists) > 0 {
		track.Artist = ft.Artists[0].Name
	}
	return track
}

func toDevice(d spotify.PlayerDevice) models.Device {
	return models.Device{
		ID:         string(d.ID),
		Name:       d.Name,
		Type:       d.Type,
		Active:     d.Active,
		Restricted: d.Restricted,
	}
}

// apiError maps Web API failures onto shared sentinels, keeping the API's own message.
func apiError(err error) error {
	if err == nil {
		return nil
	}

	var serr spotify.Error
	if errors.As(err, &serr) {
		switch serr.Status {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", shared.ErrTokenExpired, serr.Message)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s", shared.ErrForbidden, serr.Message)
		}
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, serr.Message)
	}

	return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
}
