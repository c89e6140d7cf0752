package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/webplayer/internal/server"
	"github.com/desertthunder/webplayer/internal/services"
	"github.com/urfave/cli/v3"
)

// Serve runs the OAuth proxy until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	srv, err := r.newServer(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("starting proxy", "addr", srv.Addr(), "redirect_uri", r.config.Credentials.Spotify.RedirectURI)
	return srv.Run(ctx)
}

func (r *Runner) newServer(cmd *cli.Command) (*server.Server, error) {
	if host := cmd.String("host"); host != "" {
		r.config.Server.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		r.config.Server.Port = port
	}

	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	auth, err := services.NewSpotifyAuth(r.config.Credentials.Spotify.Map())
	if err != nil {
		return nil, fmt.Errorf("failed to configure OAuth: %w", err)
	}
	auth.SetHTTPClient(r.httpClient)

	return server.New(auth, server.Options{
		Addr:      r.config.Server.Addr(),
		RateLimit: r.config.Server.RateLimit,
		RateBurst: r.config.Server.RateBurst,
		Logger:    r.logger,
	}), nil
}
