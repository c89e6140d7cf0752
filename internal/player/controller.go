package player

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/webplayer/internal/models"
	"github.com/desertthunder/webplayer/internal/services"
	"github.com/desertthunder/webplayer/internal/shared"
	"golang.org/x/sync/errgroup"
)

// LikedSongsLimit is how many saved tracks "Liked Songs" queues.
const LikedSongsLimit = 50

const (
	notReadyTitle   = "Player not ready"
	notReadyMessage = "The player is not ready yet. Please wait..."
)

// Options configures a [Controller]. Zero values fall back to sensible defaults.
type Options struct {
	// Transport defaults to the [services.PlaybackAPI] when it also implements [services.Transport].
	Transport  services.Transport
	Refresher  services.Refresher
	Display    Display
	Logger     *log.Logger
	LikedLimit int
}

// Controller drives playback for one [Session].
type Controller struct {
	session    *Session
	api        services.PlaybackAPI
	transport  services.Transport
	refresher  services.Refresher
	display    Display
	logger     *log.Logger
	likedLimit int
}

// Library is what [Controller.Load] fetched. Playlists ends with the Liked Songs entry.
type Library struct {
	Profile   *models.Profile
	Playlists []models.Playlist
}

// NewController creates a controller over api for session.
func NewController(session *Session, api services.PlaybackAPI, opts Options) *Controller {
	c := &Controller{
		session:    session,
		api:        api,
		transport:  opts.Transport,
		refresher:  opts.Refresher,
		display:    opts.Display,
		logger:     opts.Logger,
		likedLimit: opts.LikedLimit,
	}

	if c.transport == nil {
		if t, ok := api.(services.Transport); ok {
			c.transport = t
		}
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.display == nil {
		c.display = LogDisplay{Logger: c.logger}
	}
	if c.likedLimit <= 0 || c.likedLimit > LikedSongsLimit {
		c.likedLimit = LikedSongsLimit
	}

	return c
}

// Session returns the controller's session.
func (c *Controller) Session() *Session {
	return c.session
}

// Load fetches the profile and the library concurrently. The two fetches are independent:
// either may fail without affecting the other, and each failure is shown on its own.
//
// The library half fetches playlists and saved tracks together and fails as a unit.
func (c *Controller) Load(ctx context.Context) (*Library, error) {
	if c.session.AccessToken() == "" {
		return nil, shared.ErrNotAuthenticated
	}

	lib := &Library{}
	var g errgroup.Group

	g.Go(func() error {
		profile, err := c.api.Profile(ctx)
		if err != nil {
			c.fail("Error fetching user profile", err)
			return err
		}
		lib.Profile = profile
		return nil
	})

	g.Go(func() error {
		playlists, err := c.fetchLibrary(ctx)
		if err != nil {
			c.fail("Error fetching playlists", err)
			return err
		}
		lib.Playlists = playlists
		return nil
	})

	return lib, g.Wait()
}

func (c *Controller) fetchLibrary(ctx context.Context) ([]models.Playlist, error) {
	g, gctx := errgroup.WithContext(ctx)

	var playlists []models.Playlist
	var liked []models.Track

	g.Go(func() error {
		var err error
		playlists, err = c.api.Playlists(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		liked, err = c.api.LikedSongs(gctx, c.likedLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	named := make([]models.Playlist, 0, len(playlists)+1)
	for _, p := range playlists {
		if p.Name == "" {
			continue
		}
		named = append(named, p)
	}

	return append(named, models.LikedSongs(len(liked))), nil
}

// HandleEvent applies a lifecycle event. All error kinds go to the display with their fixed title.
func (c *Controller) HandleEvent(ctx context.Context, ev Event) {
	switch {
	case ev.Kind == EventReady:
		c.logger.Info("ready with device", "device_id", ev.DeviceID)
		c.session.SetDevice(ev.DeviceID)

		state, err := c.api.PlayerState(ctx)
		if err != nil {
			c.logger.Error("failed to fetch player state", "err", err)
			return
		}
		c.session.SetShuffle(state.Shuffle)
	case ev.Kind == EventNotReady:
		c.logger.Info("device has gone offline", "device_id", ev.DeviceID)
	case ev.Kind.IsError():
		c.display.Show(ev.Kind.Title(), ev.Message)
	default:
		c.logger.Warn("unknown player event", "kind", ev.Kind)
	}
}

// Connect picks a Spotify Connect device and reports it ready.
//
// The device named deviceName wins (case-insensitive); an empty name selects the active device,
// or the only one when there is exactly one.
func (c *Controller) Connect(ctx context.Context, deviceName string) (*models.Device, error) {
	devices, err := c.api.Devices(ctx)
	if err != nil {
		c.HandleEvent(ctx, Event{Kind: classify(err), Message: err.Error()})
		return nil, err
	}

	device, err := selectDevice(devices, deviceName)
	if err != nil {
		c.HandleEvent(ctx, Event{Kind: EventInitializationError, Message: err.Error()})
		return nil, err
	}

	if device.Restricted {
		err := fmt.Errorf("%w: device %q does not accept commands", shared.ErrForbidden, device.Name)
		c.HandleEvent(ctx, Event{Kind: EventAccountError, Message: err.Error()})
		return nil, err
	}

	c.HandleEvent(ctx, Event{Kind: EventReady, DeviceID: device.ID})
	return device, nil
}

func selectDevice(devices []models.Device, name string) (*models.Device, error) {
	if name != "" {
		for i := range devices {
			if strings.EqualFold(devices[i].Name, name) {
				return &devices[i], nil
			}
		}
		return nil, fmt.Errorf("%w: no device named %q", shared.ErrDeviceNotFound, name)
	}

	for i := range devices {
		if devices[i].Active {
			return &devices[i], nil
		}
	}
	if len(devices) == 1 {
		return &devices[0], nil
	}
	return nil, fmt.Errorf("%w: no active device, open Spotify on a device or pass a device name", shared.ErrDeviceNotFound)
}

// classify maps an API failure onto the error event it corresponds to.
func classify(err error) EventKind {
	switch {
	case errors.Is(err, shared.ErrTokenExpired), errors.Is(err, shared.ErrNotAuthenticated):
		return EventAuthenticationError
	case errors.Is(err, shared.ErrForbidden):
		return EventAccountError
	default:
		return EventInitializationError
	}
}

// requireDevice returns the device handle or shows the not-ready message.
func (c *Controller) requireDevice() (string, error) {
	id := c.session.DeviceID()
	if id == "" {
		c.display.Show(notReadyTitle, notReadyMessage)
		return "", shared.ErrPlayerNotReady
	}
	return id, nil
}

// PlayPlaylist starts contextURI on the session's device.
func (c *Controller) PlayPlaylist(ctx context.Context, contextURI string) error {
	deviceID, err := c.requireDevice()
	if err != nil {
		return err
	}

	if err := c.api.PlayContext(ctx, deviceID, contextURI); err != nil {
		return c.fail("Error starting playback:", err)
	}
	c.logger.Info("playback started", "context_uri", contextURI)
	return nil
}

// PlayLikedSongs queues up to the configured limit of saved tracks, in listing order.
func (c *Controller) PlayLikedSongs(ctx context.Context) error {
	deviceID, err := c.requireDevice()
	if err != nil {
		return err
	}

	tracks, err := c.api.LikedSongs(ctx, c.likedLimit)
	if err != nil {
		return c.fail("Error fetching Liked Songs", err)
	}

	if err := c.api.PlayTracks(ctx, deviceID, models.URIs(tracks)); err != nil {
		return c.fail("Error playing Liked Songs", err)
	}
	c.logger.Info("playing liked songs", "tracks", len(tracks))
	return nil
}

// ToggleShuffle flips the local flag, then pushes it to the device.
//
// The flag is flipped even when no device is ready, so the indicator and the device can disagree.
func (c *Controller) ToggleShuffle(ctx context.Context) (bool, error) {
	state := c.session.ToggleShuffle()

	deviceID, err := c.requireDevice()
	if err != nil {
		return state, err
	}

	if err := c.api.SetShuffle(ctx, deviceID, state); err != nil {
		return state, c.fail("Error setting shuffle mode", err)
	}
	c.logger.Info("shuffle mode set", "state", state)
	return state, nil
}

// Resume resumes playback on the attached device.
func (c *Controller) Resume(ctx context.Context) error {
	return c.transportCall(ctx, "Error resuming playback", "resumed playback", services.Transport.Resume)
}

// Pause pauses playback on the attached device.
func (c *Controller) Pause(ctx context.Context) error {
	return c.transportCall(ctx, "Error pausing playback", "paused playback", services.Transport.Pause)
}

// Next skips to the next track.
func (c *Controller) Next(ctx context.Context) error {
	return c.transportCall(ctx, "Error skipping to next track", "skipped to next track", services.Transport.Next)
}

// Previous goes back to the previous track.
func (c *Controller) Previous(ctx context.Context) error {
	return c.transportCall(ctx, "Error going to previous track", "went back to previous track", services.Transport.Previous)
}

func (c *Controller) transportCall(ctx context.Context, title, done string, call func(services.Transport, context.Context) error) error {
	if c.transport == nil {
		c.display.Show(notReadyTitle, notReadyMessage)
		return shared.ErrPlayerNotReady
	}

	if err := call(c.transport, ctx); err != nil {
		return c.fail(title, err)
	}
	c.logger.Info(done)
	return nil
}

// State returns the current playback state.
func (c *Controller) State(ctx context.Context) (*models.PlayerState, error) {
	state, err := c.api.PlayerState(ctx)
	if err != nil {
		return nil, c.fail("Error fetching player state", err)
	}
	return state, nil
}

// Devices lists the user's Spotify Connect devices.
func (c *Controller) Devices(ctx context.Context) ([]models.Device, error) {
	devices, err := c.api.Devices(ctx)
	if err != nil {
		return nil, c.fail("Error fetching devices", err)
	}
	return devices, nil
}

// Refresh swaps in a new access token obtained through the proxy. Never called automatically.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.refresher == nil {
		return fmt.Errorf("%w: no refresher configured", shared.ErrNotImplemented)
	}

	token, err := c.refresher.Refresh(ctx, c.session.RefreshToken())
	if err != nil {
		return c.fail("Error refreshing token", err)
	}

	c.session.SetToken(token)
	c.logger.Info("access token refreshed")
	return nil
}

func (c *Controller) fail(title string, err error) error {
	c.logger.Debug(title, "err", err)
	c.display.Show(title, err.Error())
	return err
}
