package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/webplayer/internal/formatter"
	"github.com/desertthunder/webplayer/internal/player"
	"github.com/desertthunder/webplayer/internal/shared"
	"github.com/urfave/cli/v3"
)

// connect resolves the session, attaches to a device and returns the controller.
func (r *Runner) connect(ctx context.Context, cmd *cli.Command) (*player.Controller, error) {
	session, err := r.session(cmd)
	if err != nil {
		return nil, err
	}

	c := r.controller(session, nil)
	if _, err := c.Connect(ctx, r.deviceName(cmd)); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Runner) deviceName(cmd *cli.Command) string {
	if name := cmd.String("device"); name != "" {
		return name
	}
	return r.config.Player.DeviceName
}

// PlayerLibrary prints the greeting and the playlist list, Liked Songs last, as JSON or in --format.
func (r *Runner) PlayerLibrary(ctx context.Context, cmd *cli.Command) error {
	session, err := r.session(cmd)
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	library, err := r.controller(session, nil).Load(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(library, cmd.Bool("pretty"))
	}

	return formatter.WriteLibrary(r.output, format, library.Profile, library.Playlists)
}

// PlayerPlay starts a playlist on the attached device.
func (r *Runner) PlayerPlay(ctx context.Context, cmd *cli.Command) error {
	uri := cmd.StringArg("uri")
	if uri == "" {
		return fmt.Errorf("%w: playlist URI is required", shared.ErrMissingArgument)
	}

	c, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	if err := c.PlayPlaylist(ctx, uri); err != nil {
		return err
	}
	return r.writePlainln("Playing %s", uri)
}

// PlayerLiked queues Liked Songs on the attached device.
func (r *Runner) PlayerLiked(ctx context.Context, cmd *cli.Command) error {
	c, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	if err := c.PlayLikedSongs(ctx); err != nil {
		return err
	}
	return r.writePlainln("Playing Liked Songs")
}

// PlayerShuffle toggles shuffle, starting from the device's reported state.
func (r *Runner) PlayerShuffle(ctx context.Context, cmd *cli.Command) error {
	c, err := r.connect(ctx, cmd)
	if err != nil {
		return err
	}

	on, err := c.ToggleShuffle(ctx)
	if err != nil {
		return err
	}
	return r.writePlainln("Shuffle: %s", onOff(on))
}

// PlayerPause pauses playback.
func (r *Runner) PlayerPause(ctx context.Context, cmd *cli.Command) error {
	return r.transport(ctx, cmd, "Paused", (*player.Controller).Pause)
}

// PlayerResume resumes playback.
func (r *Runner) PlayerResume(ctx context.Context, cmd *cli.Command) error {
	return r.transport(ctx, cmd, "Resumed", (*player.Controller).Resume)
}

// PlayerNext skips to the next track.
func (r *Runner) PlayerNext(ctx context.Context, cmd *cli.Command) error {
	return r.transport(ctx, cmd, "Skipped to next track", (*player.Controller).Next)
}

// PlayerPrevious returns to the previous track.
func (r *Runner) PlayerPrevious(ctx context.Context, cmd *cli.Command) error {
	return r.transport(ctx, cmd, "Back to previous track", (*player.Controller).Previous)
}

// transport runs a player-native command. These target the active player, so no device is attached.
func (r *Runner) transport(ctx context.Context, cmd *cli.Command, done string, call func(*player.Controller, context.Context) error) error {
	session, err := r.session(cmd)
	if err != nil {
		return err
	}

	if err := call(r.controller(session, nil), ctx); err != nil {
		return err
	}
	return r.writePlainln("%s", done)
}

// PlayerState prints the current playback state.
func (r *Runner) PlayerState(ctx context.Context, cmd *cli.Command) error {
	session, err := r.session(cmd)
	if err != nil {
		return err
	}

	state, err := r.controller(session, nil).State(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(state, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Playback")
	r.writePlainln("Device:  %s", state.Device.Name)
	r.writePlainln("Playing: %t", state.Playing)
	r.writePlainln("Shuffle: %s", onOff(state.Shuffle))
	if state.Track != nil {
		r.writePlainln("Track:   %s - %s", state.Track.Name, state.Track.Artist)
	}
	return nil
}

// PlayerDevices lists the available Spotify Connect devices.
func (r *Runner) PlayerDevices(ctx context.Context, cmd *cli.Command) error {
	session, err := r.session(cmd)
	if err != nil {
		return err
	}

	devices, err := r.controller(session, nil).Devices(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(devices, cmd.Bool("pretty"))
	}

	if len(devices) == 0 {
		return r.writePlainln("No devices found. Open Spotify on a device and try again.")
	}
	for _, d := range devices {
		marker := " "
		if d.Active {
			marker = "*"
		}
		r.writePlainln("%s %s (%s) %s", marker, d.Name, d.Type, d.ID)
	}
	return nil
}

// PlayerRefresh exchanges the refresh token through the proxy and prints the new access token.
func (r *Runner) PlayerRefresh(ctx context.Context, cmd *cli.Command) error {
	session, err := r.session(cmd)
	if err != nil {
		return err
	}

	c := r.controller(session, nil)
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	return r.writePlainln("%s", session.AccessToken())
}

// Login opens the proxy's /login page.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	url := r.proxy.LoginURL()
	r.writePlainln("Opening %s", url)
	r.writePlainln("After authorizing, pass the redirect URL to player commands with --url.")

	if err := r.openBrowser(url); err != nil {
		r.logger.Warn("failed to open browser, visit the URL manually", "error", err)
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
