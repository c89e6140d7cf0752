package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/webplayer/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config, err := shared.ResolveConfig("config.toml")
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Server.LogLevel))

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: "config.toml",
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "webplayer",
		Usage:    "Spotify OAuth proxy and playback client",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented", "error", err)
			os.Exit(0)
		case errors.Is(err, shared.ErrNotAuthenticated):
			logger.Error("not authenticated, run `webplayer login` and pass the redirect URL with --url")
			os.Exit(1)
		case errors.Is(err, shared.ErrMissingCredentials):
			logger.Error("missing Spotify credentials, run `webplayer config init` or set CLIENT_ID and CLIENT_SECRET")
			os.Exit(1)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
